package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/corona10/goimagehash"

	"github.com/lepinkainen/filesorter/organize"
	"github.com/lepinkainen/filesorter/ui"
)

// SimilarCmd finds perceptually similar images, catching near-duplicates
// that content hashing misses (resized or re-encoded copies).
type SimilarCmd struct {
	Files     []string `arg:"" name:"files" help:"Image files to compare" type:"existingfile"`
	Threshold int      `help:"Hamming distance threshold for similarity (0-64)" default:"10"`
}

type imageHash struct {
	file string
	hash *goimagehash.ImageHash
}

func (cmd *SimilarCmd) Run() error {
	if len(cmd.Files) < 2 {
		fmt.Printf("%s\n", ui.ErrorStyle.Render("❌ Need at least 2 files to compare"))
		return nil
	}

	registry := organize.DefaultRegistry()
	fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Calculating perceptual hashes for %d files...", len(cmd.Files))))

	var hashes []imageHash
	for _, file := range cmd.Files {
		if category, ok := registry.Classify(organize.ExtOf(file)); !ok || category != "Images" {
			fmt.Printf("⚠️  %s is not an image file, skipping\n", file)
			continue
		}

		hash, err := perceptualHash(file)
		if err != nil {
			fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ Error hashing %s: %v", file, err)))
			continue
		}
		hashes = append(hashes, imageHash{file: file, hash: hash})
	}

	fmt.Printf("\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("Comparing %d files for similarity (threshold: %d):", len(hashes), cmd.Threshold)))

	found := false
	for i := 0; i < len(hashes); i++ {
		for j := i + 1; j < len(hashes); j++ {
			distance, err := hashes[i].hash.Distance(hashes[j].hash)
			if err != nil {
				fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ Error comparing %s and %s: %v", hashes[i].file, hashes[j].file, err)))
				continue
			}
			if distance <= cmd.Threshold {
				fmt.Printf("🎯 Similar (distance %d): %s ↔ %s\n", distance, hashes[i].file, hashes[j].file)
				found = true
			}
		}
	}

	if !found {
		fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ No similar files found within threshold"))
	}

	return nil
}

func perceptualHash(file string) (*goimagehash.ImageHash, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return goimagehash.PerceptionHash(img)
}
