package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/bascrape/internal/audit"
	"github.com/brogergvhs/bascrape/internal/providers"
	"github.com/brogergvhs/bascrape/internal/ui"
	"github.com/brogergvhs/bascrape/internal/util"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report panel students that no roster knows about",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		logSvc := ui.NewLogger(cfg.Debug)

		out, err := loadOutputs(cfg.Output, logSvc)
		if err != nil {
			return err
		}

		total := 0
		for _, r := range auditOutputs(out) {
			total += len(r.findings)
			logSvc.Infof("%s: %d students, %d unknown", r.source, r.students, len(r.findings))
			for _, f := range r.findings {
				line := fmt.Sprintf("%s: %q in panels %s", r.source, f.Name, strings.Join(f.PanelIDs, ", "))
				if f.Suggestion != "" {
					line += fmt.Sprintf(" (did you mean %q? %.2f)", f.Suggestion, f.Similarity)
				}
				logSvc.Warnf("%s", line)
			}
		}

		if total == 0 {
			fmt.Println("Every panel student is known.")
			return nil
		}
		fmt.Printf("%d unknown students.\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

type sourceFindings struct {
	source string
	// students is the number of distinct names in the listing.
	students int
	findings []audit.Finding
}

// auditOutputs checks every panel listing against the kana keyspace. The
// English listing names students in kana too, so one set serves all
// sources; English display names are added for hand-edited listings.
func auditOutputs(out *outputs) []sourceFindings {
	known := audit.KnownNames(
		[]map[string]providers.Student{out.studentsJa},
		out.wikiru,
		kanaOf(out.npcsJa),
		englishNames(out.studentsEn),
		englishNames(npcStudents(out.npcsEn)),
	)

	var res []sourceFindings
	for _, source := range panelSources {
		panels, ok := out.panels[source]
		if !ok {
			continue
		}
		res = append(res, sourceFindings{
			source:   source,
			students: len(audit.Students(panels)),
			findings: audit.UnknownStudents(panels, known),
		})
	}
	return res
}

type outputs struct {
	panels     map[string][]providers.Panel
	studentsEn map[string]providers.Student
	studentsJa map[string]providers.Student
	npcsEn     map[string]providers.NPC
	npcsJa     map[string]providers.NPC
	wikiru     []string
}

// loadOutputs reads whatever a previous scrape wrote. Missing files are
// skipped with a warning.
func loadOutputs(dir string, log *ui.Logger) (*outputs, error) {
	out := &outputs{panels: map[string][]providers.Panel{}}

	read := func(name string, v any) (bool, error) {
		path := filepath.Join(dir, name)
		err := util.ReadJSON(path, v)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warnf("%s not found, skipping", path)
			return false, nil
		}
		return err == nil, err
	}

	for _, source := range panelSources {
		var panels []providers.Panel
		ok, err := read(source+".json", &panels)
		if err != nil {
			return nil, err
		}
		if ok {
			out.panels[source] = panels
		}
	}

	for name, v := range map[string]any{
		filepath.Join("students", "en.json"):     &out.studentsEn,
		filepath.Join("students", "ja.json"):     &out.studentsJa,
		filepath.Join("students", "wikiru.json"): &out.wikiru,
		filepath.Join("npc", "en.json"):          &out.npcsEn,
		filepath.Join("npc", "ja.json"):          &out.npcsJa,
	} {
		if _, err := read(name, v); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func kanaOf(npcs map[string]providers.NPC) []string {
	out := make([]string, 0, len(npcs))
	for k := range npcs {
		out = append(out, k)
	}
	return out
}

func npcStudents(npcs map[string]providers.NPC) map[string]providers.Student {
	out := make(map[string]providers.Student, len(npcs))
	for k, n := range npcs {
		out[k] = n.Student
	}
	return out
}

func englishNames(students map[string]providers.Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.En)
	}
	return out
}
