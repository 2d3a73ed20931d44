// Package checkpoint persists the start date of the next fetch window.
package checkpoint

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// Key is the variable that holds the checkpoint.
const Key = "FROM_DATE"

const dateLayout = "2006-01-02"

// EnvStore keeps the checkpoint in a dotenv file next to the other settings.
type EnvStore struct {
	path string
}

// NewEnvStore creates an EnvStore over the dotenv file at path.
func NewEnvStore(path string) *EnvStore {
	return &EnvStore{path: path}
}

// Path returns the dotenv file location.
func (s *EnvStore) Path() string {
	return s.path
}

// Save writes date under Key, keeping every other variable of the file.
// The file is created when missing. Comments and ordering are not preserved.
func (s *EnvStore) Save(date time.Time) error {
	env, err := godotenv.Read(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", s.path, err)
		}
		env = make(map[string]string)
	}

	env[Key] = date.Format(dateLayout)
	if err := godotenv.Write(env, s.path); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
