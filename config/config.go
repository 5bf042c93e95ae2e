package config

import "os"

type Config struct {
	ServerPort        string
	TesseractDataPath string
	GeminiAPIKey      string
	GeminiModel       string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-1.5-flash"
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       geminiModel,
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
	}
}
