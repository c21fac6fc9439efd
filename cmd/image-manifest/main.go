package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/DMarby/bmpfilter/internal/bitmap"
	"github.com/DMarby/bmpfilter/internal/database"
	"github.com/DMarby/bmpfilter/internal/storage"
)

// Comandline flags
var (
	imagePath         = flag.String("image-path", ".", "path to bitmap directory")
	imageManifestPath = flag.String("image-manifest-path", "./image-manifest.json", "path to the image manifest to update")
)

func main() {
	flag.Parse()

	resolvedManifestPath, err := filepath.Abs(*imageManifestPath)
	if err != nil {
		log.Fatal(err)
	}

	manifestData, err := os.ReadFile(resolvedManifestPath)
	if err != nil {
		log.Fatal(err)
	}

	var images []database.Image
	err = json.Unmarshal(manifestData, &images)
	if err != nil {
		log.Fatal(err)
	}

	for i, img := range images {
		width, height, err := dimensions(img.ID)
		if err != nil {
			log.Fatalf("%s: %s", img.ID, err)
		}

		images[i].Width = width
		images[i].Height = height
	}

	file, err := os.OpenFile(resolvedManifestPath, os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")

	if err := encoder.Encode(images); err != nil {
		log.Fatal(err)
	}
}

func dimensions(id string) (width, height int, err error) {
	key, err := storage.Key(id)
	if err != nil {
		return 0, 0, err
	}

	resolvedImagePath, err := filepath.Abs(filepath.Join(*imagePath, key))
	if err != nil {
		return 0, 0, err
	}

	reader, err := os.Open(resolvedImagePath)
	if err != nil {
		return 0, 0, err
	}
	defer reader.Close()

	config, format, err := bitmap.DecodeConfig(reader)
	if err != nil {
		return 0, 0, err
	}

	if format != bitmap.BMP {
		return 0, 0, fmt.Errorf("expected a bitmap, got %s", format)
	}

	return config.Width, config.Height, nil
}
