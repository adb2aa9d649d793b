package mail

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"
)

const storeTimeLayout = "20060102-150405"

// Store writes the message a Send with body would transmit to an .eml file
// in dir, or in the working directory when dir is empty. The file name is
// the slugified subject plus a timestamp. Nothing is dialed.
func (m *Mailer) Store(dir, body string) (string, error) {
	gm, err := m.compose(m.Message(body))
	if err != nil {
		return "", err
	}

	storeDir := dir
	if len(storeDir) == 0 {
		storeDir, err = os.Getwd()
		if err != nil {
			storeDir = "./"
		}
	}
	if err := os.MkdirAll(storeDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create store directory: %w", err)
	}

	name := slug.Make(m.subject)
	if len(name) == 0 {
		name = "message"
	}
	filename := filepath.Join(storeDir, fmt.Sprintf("%s-%s.eml", name, time.Now().Format(storeTimeLayout)))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if _, err := gm.WriteTo(file); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
