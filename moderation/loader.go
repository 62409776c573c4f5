package moderation

import (
	"bufio"
	"bytes"
	"io/fs"
	"path"
	"strings"
)

// Dictionary holds the censored words read from a directory of word lists,
// one .txt file per language, one word per line.
type Dictionary struct {
	Words     []string
	Languages []string
}

// LoadDictionary reads every .txt file of dir. Duplicates are removed.
func LoadDictionary(fsys fs.FS, dir string) (Dictionary, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return Dictionary{}, err
	}

	var dictionary Dictionary
	unique := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		dictionary.Languages = append(dictionary.Languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return Dictionary{}, err
		}

		// handles both \n and \r\n
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			word := strings.TrimSpace(scanner.Text())
			if word == "" {
				continue
			}
			if _, seen := unique[word]; !seen {
				unique[word] = struct{}{}
				dictionary.Words = append(dictionary.Words, word)
			}
		}
		if err := scanner.Err(); err != nil {
			return Dictionary{}, err
		}
	}
	return dictionary, nil
}
