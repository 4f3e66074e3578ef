// Command receiptwatcher watches the receipts upload directory and
// processes images dropped there outside the HTTP flow (scp, rsync,
// manual copies): it generates thumbnails, runs OCR and records the
// suggested amount on the matching upload row.
package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"aidat/models"
	"aidat/pkg/receipt"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var db *gorm.DB

func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	base := os.Getenv("UPLOAD_BASE")
	if base == "" {
		base = "uploads"
	}
	dir := filepath.Join(base, "expenses")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("failed to create watch dir %s: %v", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("failed to create watcher: %v", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		log.Fatalf("failed to watch %s: %v", dir, err)
	}
	log.Printf("watching %s for new receipts", dir)

	// Writes arrive in bursts; debounce per path so a file is processed
	// once after its last write.
	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			path := event.Name
			if !imageExts[strings.ToLower(filepath.Ext(path))] {
				continue
			}
			if strings.Contains(filepath.Base(path), "_thumb") {
				continue
			}
			mu.Lock()
			if t, ok := pending[path]; ok {
				t.Stop()
			}
			pending[path] = time.AfterFunc(2*time.Second, func() {
				mu.Lock()
				delete(pending, path)
				mu.Unlock()
				processReceipt(path)
			})
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func processReceipt(path string) {
	fileName := filepath.Base(path)
	log.Printf("processing %s", fileName)

	var up models.Upload
	if err := db.Where("file_name = ?", fileName).First(&up).Error; err != nil {
		up = models.Upload{FileName: fileName, StorePath: "expenses/" + fileName}
	}

	ext := filepath.Ext(path)
	thumb := strings.TrimSuffix(path, ext) + "_thumb" + ext
	if err := receipt.Thumbnail(path, thumb); err != nil {
		log.Printf("thumbnail failed for %s: %v", fileName, err)
	}

	amount, conf, raw, err := receipt.ExtractAmount(path)
	switch {
	case err == nil && conf > 0.15:
		up.SuggestedAmount = amount
		up.Failed = false
		up.FailedReason = ""
		log.Printf("OCR %s: amount=%d raw=%q conf=%.2f", fileName, amount, raw, conf)
	case errors.Is(err, receipt.ErrNoAmount):
		log.Printf("OCR %s: no amount detected", fileName)
	case err != nil:
		up.Failed = true
		up.FailedReason = err.Error()
		log.Printf("OCR failed for %s: %v", fileName, err)
	}

	if err := db.Save(&up).Error; err != nil {
		log.Printf("failed to save upload row for %s: %v", fileName, err)
	}
}
