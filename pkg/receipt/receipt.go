package receipt

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// ExtractAmount runs light preprocessing plus Tesseract OCR over a
// receipt image and returns the detected amount in kuruş together with a
// rough confidence proxy and the raw matched substring. Returns
// ErrNoAmount when nothing plausible is found.
func ExtractAmount(path string) (int64, float64, string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return 0, 0, "", fmt.Errorf("open image: %w", err)
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	gray = imaging.Sharpen(gray, 0.7)
	if gray.Bounds().Dy() < 900 {
		gray = imaging.Resize(gray, 0, 1300, imaging.Lanczos)
	}

	tmp := path
	if tmpFile, err := os.CreateTemp("", "receipt-*.png"); err == nil {
		tmp = tmpFile.Name()
		_ = tmpFile.Close()
		defer os.Remove(tmp)
		_ = imaging.Save(gray, tmp)
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("tur", "eng")
	_ = client.SetWhitelist("0123456789TLtl₺.,:()/- ")
	if err := client.SetImage(tmp); err != nil {
		return 0, 0, "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return 0, 0, "", fmt.Errorf("ocr: %w", err)
	}

	amount, raw, ok := BestCandidate(FindCandidates(text))
	if !ok {
		return 0, 0, "", ErrNoAmount
	}
	conf := float64(len(raw)) / float64(len(text)+1)
	if conf > 1 {
		conf = 1
	}
	return amount, conf, raw, nil
}

// Thumbnail writes a bounded-size preview of a receipt image next to the
// original, for list views.
func Thumbnail(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	thumb := imaging.Fit(img, 480, 480, imaging.Lanczos)
	if err := imaging.Save(thumb, dst); err != nil {
		return fmt.Errorf("save thumbnail: %w", err)
	}
	return nil
}
