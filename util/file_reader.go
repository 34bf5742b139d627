package util

import (
	"github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"
)

// ReadFileContent ファイルの内容を読み取り、テキストとしてデコードする
func ReadFileContent(fs billy.Basic, filePath string) (string, error) {
	content, err := billyutil.ReadFile(fs, filePath)
	if err != nil {
		return "", err
	}
	return DecodeText(content), nil
}
