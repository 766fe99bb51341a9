// Package recorder archives decoded records as JSON lines in one file per day.
// Files of previous days are compressed with gzip.
package recorder

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// Recorder is an io.Writer that rotates its file when the date changes.
// Rotation only happens between lines, so every file holds whole lines.
type Recorder struct {
	dir    string
	prefix string
	useUTC bool
	logger *logrus.Logger
	now    func() time.Time

	mutex       sync.Mutex
	currentFile *os.File
	currentDate string
	lineStart   bool
	compress    sync.WaitGroup
}

// New creates the directory if needed and opens the file for today.
func New(dir, prefix string, useUTC bool, logger *logrus.Logger) (*Recorder, error) {
	return newRecorder(dir, prefix, useUTC, logger, time.Now)
}

func newRecorder(dir, prefix string, useUTC bool, logger *logrus.Logger, now func() time.Time) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create record directory: %w", err)
	}

	r := &Recorder{
		dir:       dir,
		prefix:    prefix,
		useUTC:    useUTC,
		logger:    logger,
		now:       now,
		lineStart: true,
	}
	if err := r.rotate(r.today()); err != nil {
		return nil, fmt.Errorf("failed to initialize record file: %w", err)
	}
	return r, nil
}

func (r *Recorder) today() string {
	now := r.now()
	if r.useUTC {
		now = now.UTC()
	}
	return now.Format(dateLayout)
}

func (r *Recorder) fileName(date string) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_%s.jsonl", r.prefix, date))
}

// Write appends to the current file, switching to a new one first when a line
// starts on a new day.
func (r *Recorder) Write(p []byte) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.currentFile == nil {
		return 0, fmt.Errorf("recorder is closed")
	}
	if len(p) == 0 {
		return 0, nil
	}

	if r.lineStart {
		if date := r.today(); date != r.currentDate {
			r.logger.WithFields(logrus.Fields{
				"old_date": r.currentDate,
				"new_date": date,
			}).Info("Rotating record file")

			if err := r.rotate(date); err != nil {
				return 0, err
			}
		}
	}

	n, err := r.currentFile.Write(p)
	if n > 0 {
		r.lineStart = p[n-1] == '\n'
	}
	return n, err
}

func (r *Recorder) rotate(date string) error {
	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			r.logger.WithError(err).Error("Failed to close old record file")
		}

		old := r.fileName(r.currentDate)
		r.compress.Add(1)
		go func() {
			defer r.compress.Done()
			r.compressFile(old)
		}()
	}

	path := r.fileName(date)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create record file %s: %w", path, err)
	}

	r.currentFile = file
	r.currentDate = date
	r.logger.WithField("file", path).Info("Created new record file")
	return nil
}

// compressFile replaces a record file by its gzip copy.
func (r *Recorder) compressFile(path string) {
	target := path + ".gz"
	log := r.logger.WithFields(logrus.Fields{
		"source": path,
		"target": target,
	})

	if err := gzipFile(path, target); err != nil {
		log.WithError(err).Error("Failed to compress record file")
		return
	}
	if err := os.Remove(path); err != nil {
		log.WithError(err).Error("Failed to remove original record file")
		return
	}
	log.Info("Record file compressed")
}

func gzipFile(source, target string) error {
	src, err := os.Open(source)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	gz := gzip.NewWriter(dst)
	gz.Name = filepath.Base(source)
	gz.ModTime = time.Now()

	if _, err := io.Copy(gz, src); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return dst.Close()
}

// CurrentFile returns the path of the file being written
func (r *Recorder) CurrentFile() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.fileName(r.currentDate)
}

// Files lists every record file, compressed or not.
func (r *Recorder) Files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.dir, r.prefix+"_*.jsonl*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list record files: %w", err)
	}
	return files, nil
}

// Cleanup removes record files last modified more than maxDays ago. The current
// file is kept.
func (r *Recorder) Cleanup(maxDays int) (int, error) {
	if maxDays <= 0 {
		return 0, fmt.Errorf("maxDays must be positive")
	}

	files, err := r.Files()
	if err != nil {
		return 0, err
	}

	cutoff := r.now().AddDate(0, 0, -maxDays)
	current := r.CurrentFile()

	removed := 0
	for _, file := range files {
		if file == current {
			continue
		}

		info, err := os.Stat(file)
		if err != nil {
			r.logger.WithError(err).WithField("file", file).Warn("Failed to stat record file")
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(file); err != nil {
			r.logger.WithError(err).WithField("file", file).Error("Failed to remove old record file")
			continue
		}
		removed++
	}

	r.logger.WithField("count", removed).Info("Cleaned up old record files")
	return removed, nil
}

// Close closes the current file and waits for pending compressions.
func (r *Recorder) Close() error {
	r.mutex.Lock()
	var err error
	if r.currentFile != nil {
		err = r.currentFile.Close()
		r.currentFile = nil
	}
	r.mutex.Unlock()

	r.compress.Wait()
	return err
}
