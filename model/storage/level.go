package storage

import (
	"fmt"
	"strings"
)

// Level describes where a block is retained and in what form. The zero value
// (LevelNone) is the "no storage" sentinel: a block reported at LevelNone is
// no longer retained anywhere and must be dropped from bookkeeping.
type Level struct {
	UseMemory    bool `json:"useMemory" yaml:"useMemory"`
	UseDisk      bool `json:"useDisk" yaml:"useDisk"`
	Deserialized bool `json:"deserialized" yaml:"deserialized"`
	Replication  int  `json:"replication" yaml:"replication"`
}

// Canonical levels recognised by the execution engine.
var (
	LevelNone        = Level{}
	MemoryOnly       = Level{UseMemory: true, Deserialized: true, Replication: 1}
	MemoryOnlySer    = Level{UseMemory: true, Replication: 1}
	DiskOnly         = Level{UseDisk: true, Replication: 1}
	MemoryAndDisk    = Level{UseMemory: true, UseDisk: true, Deserialized: true, Replication: 1}
	MemoryAndDiskSer = Level{UseMemory: true, UseDisk: true, Replication: 1}
)

// IsValid reports whether the level denotes actual storage. A level that uses
// neither memory nor disk, or carries no replica, is equivalent to LevelNone.
func (l Level) IsValid() bool {
	return (l.UseMemory || l.UseDisk) && l.Replication > 0
}

func (l Level) String() string {
	if !l.IsValid() {
		return "None"
	}
	var parts []string
	if l.UseMemory {
		parts = append(parts, "Memory")
	}
	if l.UseDisk {
		parts = append(parts, "Disk")
	}
	if l.Deserialized {
		parts = append(parts, "Deserialized")
	}
	return fmt.Sprintf("%s %dx", strings.Join(parts, " "), l.Replication)
}
