package util

import (
	"reflect"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	billyutil "github.com/go-git/go-billy/v5/util"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "ASCII", input: []byte("hello\n"), want: "hello\n"},
		{name: "マルチバイト", input: []byte("こんにちは"), want: "こんにちは"},
		{name: "不正なバイト", input: []byte{'a', 0xff, 'b'}, want: "a�b"},
		{name: "途中で切れたUTF-8", input: []byte{'x', 0xe3, 0x81}, want: "x��"},
		{name: "空", input: []byte{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeText(tt.input); got != tt.want {
				t.Errorf("DecodeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "空文字列", input: "", want: []string{}},
		{name: "末尾改行", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "末尾改行なし", input: "a\nb", want: []string{"a", "b"}},
		{name: "空行を保持", input: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "CRLF", input: "a\r\nb\r\n", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLines(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadFileContent(t *testing.T) {
	fs := memfs.New()
	if err := billyutil.WriteFile(fs, "/repo/a.txt", []byte{'o', 'k', 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFileContent(fs, "/repo/a.txt")
	if err != nil {
		t.Fatalf("ReadFileContent() error = %v", err)
	}
	if got != "ok�" {
		t.Errorf("ReadFileContent() = %q", got)
	}

	if _, err := ReadFileContent(fs, "/repo/missing.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
