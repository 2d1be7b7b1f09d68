package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-predictor/internal/config"
	"alfredoptarigan/resume-predictor/internal/models"
	"alfredoptarigan/resume-predictor/internal/services"
)

var resumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Usage: go run ./scripts/predict_resumes.go <file-or-dir>...
func main() {
	log.Println("🚀 Starting batch prediction...")

	if len(os.Args) < 2 {
		log.Fatalf("❌ Usage: %s <file-or-dir>...", filepath.Base(os.Args[0]))
	}

	cfg := config.Load()
	predictor := services.NewPredictorService(cfg.Predictor.URL, cfg.Predictor.Timeout)
	ctx := context.Background()

	paths := collectResumes(os.Args[1:])
	if len(paths) == 0 {
		log.Fatalf("❌ No .pdf or .docx files found")
	}

	successCount := 0
	failCount := 0

	for _, path := range paths {
		log.Printf("\n📄 Processing: %s", path)

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("   ❌ Failed to read file: %v", err)
			failCount++
			continue
		}

		file := models.SelectedFile{
			Name:        filepath.Base(path),
			ContentType: resumeTypes[strings.ToLower(filepath.Ext(path))],
			Data:        data,
		}

		result, err := predictor.Predict(ctx, file, "")
		if err != nil {
			log.Printf("   ❌ %s", services.DisplayMessage(err))
			failCount++
			continue
		}

		log.Printf("   📊 Score: %d/100 (%s)", result.ATSScore, models.TierFor(result.ATSScore))
		log.Printf("   📝 Verdict: %s", result.Verdict)
		for _, issue := range result.Issues {
			log.Printf("   ⚠️  %s", issue)
		}
		for _, tip := range result.Suggestions {
			log.Printf("   💡 %s", tip)
		}
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Prediction Summary:")
	log.Printf("   ✅ Successful: %d files", successCount)
	log.Printf("   ❌ Failed: %d files", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}

func collectResumes(args []string) []string {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", arg, err)
			continue
		}

		if !info.IsDir() {
			if isResume(arg) {
				paths = append(paths, arg)
			}
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", arg, err)
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && isResume(entry.Name()) {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return paths
}

func isResume(name string) bool {
	_, ok := resumeTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}
