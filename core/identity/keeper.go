package identity

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Keeper persists the session Identity between runs, plus the last-used
// secondary code under an auxiliary key (a legacy artifact the original
// client kept; not required for correctness).
type Keeper interface {
	// ReadIdentity returns the persisted identity, or (nil, nil) when absent.
	ReadIdentity() (*Identity, error)
	WriteIdentity(id Identity) error
	WriteLastCode(code string) error
	// Clear removes both records. Clearing an empty keeper is a no-op.
	Clear() error
}

// FileKeeper stores session records as JSON files in a state directory,
// one file per key.
type FileKeeper struct {
	dir     string
	key     string
	codeKey string
}

var _ Keeper = (*FileKeeper)(nil)

func NewFileKeeper(dir, key, codeKey string) *FileKeeper {
	return &FileKeeper{dir: dir, key: key, codeKey: codeKey}
}

func (k *FileKeeper) identityPath() string {
	return filepath.Join(k.dir, k.key+".json")
}

func (k *FileKeeper) codePath() string {
	return filepath.Join(k.dir, k.codeKey+".json")
}

func (k *FileKeeper) ReadIdentity() (*Identity, error) {
	data, err := os.ReadFile(k.identityPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading persisted identity")
	}
	id := new(Identity)
	if err = json.Unmarshal(data, id); err != nil {
		return nil, errors.Wrap(err, "parsing persisted identity")
	}
	return id, nil
}

func (k *FileKeeper) WriteIdentity(id Identity) error {
	if err := os.MkdirAll(k.dir, 0o700); err != nil {
		return errors.Wrap(err, "creating state dir")
	}
	data, err := json.Marshal(id)
	if err != nil {
		return errors.Wrap(err, "serializing identity")
	}
	return errors.Wrap(os.WriteFile(k.identityPath(), data, 0o600), "writing persisted identity")
}

func (k *FileKeeper) WriteLastCode(code string) error {
	if err := os.MkdirAll(k.dir, 0o700); err != nil {
		return errors.Wrap(err, "creating state dir")
	}
	data, err := json.Marshal(code)
	if err != nil {
		return errors.Wrap(err, "serializing code")
	}
	return errors.Wrap(os.WriteFile(k.codePath(), data, 0o600), "writing last code")
}

func (k *FileKeeper) Clear() error {
	for _, path := range []string{k.identityPath(), k.codePath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", path)
		}
	}
	return nil
}
