// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN           string `json:"dsn"`
			BusyTimeoutMS int    `json:"busy_timeout_ms"`
		} `json:"db,omitempty"`

		Legacy struct {
			UsersFile string `json:"users_file"`
		} `json:"legacy,omitempty"`

		Seed struct {
			DataDir string `json:"data_dir"`
		} `json:"seed,omitempty"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN:           jsonCfg.Storage.DB.DSN,
				BusyTimeoutMS: jsonCfg.Storage.DB.BusyTimeoutMS,
			},
			Legacy: Legacy{
				UsersFile: jsonCfg.Storage.Legacy.UsersFile,
			},
			Seed: Seed{
				DataDir: jsonCfg.Storage.Seed.DataDir,
			},
		},
		JSONFilePath: "",
	}

	return cfg, nil
}