package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

func shellEscape(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

func printJSON(w io.Writer, arr []Result) error {
	if arr == nil {
		arr = []Result{}
	}
	enc, err := json.MarshalIndent(arr, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(enc))
	return err
}
