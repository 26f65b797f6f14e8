package system

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrIsDirectory = errors.New("is a directory")

// CheckReadableFile reports why path cannot serve as a regular input file.
func CheckReadableFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "file %q", path)
		}
		logrus.Debugf("os.Stat %q error: %v", path, err)
		return err
	}

	if info.IsDir() {
		return errors.Wrapf(ErrIsDirectory, "file %q", path)
	}

	return nil
}
