package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	dir := filepath.Join("out", "pdfs")

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"plain", "QA_Photosynthesis_easy.pdf", "QA_Photosynthesis_easy.pdf"},
		{"slash in topic", "QA_TCP/IP_basics_medium.pdf", "QA_TCP_IP_basics_medium.pdf"},
		{"backslash in topic", `QA_C:\Windows_hard.pdf`, "QA_C:_Windows_hard.pdf"},
		{"parent traversal", "QA_../../etc/passwd_easy.pdf", "QA_.._.._etc_passwd_easy.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(dir, tt.filename)
			assert.Equal(t, filepath.Join(dir, tt.want), got)
			assert.Equal(t, dir, filepath.Dir(got))
		})
	}
}
