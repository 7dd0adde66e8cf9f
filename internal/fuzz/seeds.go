package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16  // 64 KiB
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
)

// patternSeeds are regex bodies covering every member kind and the
// malformed cases.
var patternSeeds = []string{
	``,
	`[\d\w]`,
	`[\w\d\d]+`,
	`^[\D\W\S]$`,
	`[\d\s\w]`,
	`[]\d\w]`,
	`[^\d\w]`,
	`[\[\]\d]`,
	`[a-z\d][\w-]`,
	`[\d`,
	`[\`,
	`\[\d\w\]`,
	`[é\d\w]`,
	`(?:[\D\W]|[\s\S])*`,
}

// hostSeeds are small PHP and Go sources keyed by file name.
var hostSeeds = map[string]string{
	"a.php": "<?php\npreg_match('/[\\d\\w]/', $s);\n",
	"b.php": "<?php\npreg_replace(\"#[\\\\D\\\\W]#u\", '', $s); // preg_match('/[\\d\\w]/')\n",
	"c.php": "<?php\npreg_split('{[\\d\\w]}', $s); preg_match('/[\\d/', $s); preg_match('abc', $s);\n",
	"a.go":  "package a\n\nimport \"regexp\"\n\nvar re = regexp.MustCompile(`[\\d\\w]+`)\n",
	"b.go":  "package a\n\nimport \"regexp\"\n\nvar re = regexp.MustCompile(\"[\\\\w\\\\d]\")\n",
}

// addHostSeeds adds the inline host sources and the fixture testdata files
// with the given extension.
func addHostSeeds(f *testing.F, ext string) {
	for name, src := range hostSeeds {
		if filepath.Ext(name) == ext {
			f.Add([]byte(src))
		}
	}
	root := filepath.Join("..", "fixture", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ext {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
