package ingest

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/internal/store"
	"github.com/secopslab/secwatch/models"
)

// MigrateLegacyUsers imports credential records from the flat file the
// system used before the relational store became authoritative. Each line
// holds "username,password_hash,role"; the role field may be absent, in
// which case the record gets the regular user role.
//
// The import is idempotent: usernames already present in the store are
// skipped, and re-running the migration never overwrites stored hashes.
// Lines with fewer than two fields are dropped. A missing file is not an
// error; the migration is simply a no-op.
func MigrateLegacyUsers(ctx context.Context, path string, users store.UserRepository) (Result, error) {
	log := logger.FromContext(ctx)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("func", "MigrateLegacyUsers").Str("path", path).Msg("legacy users file not found, skipping migration")
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("open legacy users file: %w", err)
	}
	defer file.Close()

	var res Result
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			log.Warn().Str("func", "MigrateLegacyUsers").Msg("dropping malformed legacy user line")
			res.Dropped++
			continue
		}

		username := strings.TrimSpace(fields[0])
		hash := strings.TrimSpace(fields[1])
		if username == "" || hash == "" {
			log.Warn().Str("func", "MigrateLegacyUsers").Msg("dropping legacy user line with blank username or hash")
			res.Dropped++
			continue
		}

		role := models.RoleUser
		if len(fields) >= 3 {
			role = models.ParseRole(strings.TrimSpace(fields[2]))
		}

		_, inserted, err := users.CreateUserIfAbsent(ctx, models.User{
			Username:     username,
			PasswordHash: hash,
			Role:         role,
		})
		if err != nil {
			return res, fmt.Errorf("migrate legacy user %q: %w", username, err)
		}
		if inserted {
			log.Info().Str("func", "MigrateLegacyUsers").Str("username", username).Msg("migrated legacy user")
			res.Inserted++
		} else {
			res.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read legacy users file: %w", err)
	}

	return res, nil
}
