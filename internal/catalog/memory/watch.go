package memory

import (
	"context"
	"path/filepath"
	"time"

	"shop-assistant/internal/common/logger"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors emit for one save.
const reloadDelay = 200 * time.Millisecond

// Watch reloads path into s whenever it changes, until ctx is done. A fixture
// that fails to load leaves the previous snapshot in place. The parent
// directory is watched so atomic rename-on-save is seen.
func Watch(ctx context.Context, path string, s *Store, log logger.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return err
	}

	go func() {
		defer w.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				pending = time.After(reloadDelay)

			case <-pending:
				pending = nil
				products, err := LoadFile(abs)
				if err != nil {
					log.Warn("catalog fixture reload failed", map[string]interface{}{
						"path":  abs,
						"error": err.Error(),
					})
					continue
				}
				s.Replace(products)
				log.Info("catalog fixture reloaded", map[string]interface{}{
					"path":     abs,
					"products": len(products),
				})

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("catalog watcher error", map[string]interface{}{"error": err.Error()})
			}
		}
	}()

	return nil
}
