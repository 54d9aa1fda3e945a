package ui

import "sync/atomic"

type Stats struct {
	TotalPages      atomic.Int64
	TotalPanels     atomic.Int64
	TotalCharacters atomic.Int64
	TotalFiles      atomic.Int64
}
