package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	seedExt      = ".greet"
)

const maxFuzzInput = 1 << 16 // 64 KiB

var inlineSeeds = []string{
	"",
	"Hello Alice",
	"hello Alice\nGoodbye Bob",
	"Hello",
	"Hello 123",
	"Hi Alice",
	"Helloworld",
	"HEllo Bob",
	"name: Bob Hello Bob",
	"name:Bob",
	"Hello\nAlice",
	"\ufeffHello Alice\r\n",
	"Hello \t  Alice   ",
	"Goodbye Hello",
	"Привет Мир",
	"\x00\xff\xfe",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.greet файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != seedExt {
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
		f.Fatalf("walk testdata: %v", err)
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

// clampInput copies input so the harness never aliases the fuzzer's buffer.
func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
