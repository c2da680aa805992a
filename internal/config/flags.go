package config

import (
	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database DSN ("postgres://..." or a SQLite file path)
//	-busy-timeout SQLite lock-wait bound in milliseconds
//	-users-file legacy users.txt path (migration source)
//	-data-dir directory with CSV seed batches
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var busyTimeoutMS int
	var usersFile string
	var dataDir string
	var jsonConfigPath string

	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.IntVar(&busyTimeoutMS, "busy-timeout", 0, "SQLite busy timeout (ms)")
	flag.StringVar(&usersFile, "users-file", "", "Legacy users.txt path")
	flag.StringVar(&dataDir, "data-dir", "", "CSV seed data directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN:           databaseDSN,
				BusyTimeoutMS: busyTimeoutMS,
			},
			Legacy: Legacy{
				UsersFile: usersFile,
			},
			Seed: Seed{
				DataDir: dataDir,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}
