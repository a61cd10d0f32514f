package config

import "os"

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok {
		return ":8080"
	}
	return port
}

func LocalStorePath() string {
	path, ok := os.LookupEnv("LOCAL_STORE_PATH")
	if !ok {
		return "pieceful.db"
	}
	return path
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}
