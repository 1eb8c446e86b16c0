package config

import "os"

func IsDebug() bool {
	return os.Getenv("KOMMISSAR_DEBUG") == "1"
}
