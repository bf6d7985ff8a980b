// Package importer converts Google Form response rows into user records and
// persists each new registrant exactly once.
package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/TonyNguyenVn17/USF-Hackabull/internal/model"
	"github.com/TonyNguyenVn17/USF-Hackabull/internal/sheets"
	"github.com/TonyNguyenVn17/USF-Hackabull/internal/store"
	"github.com/TonyNguyenVn17/USF-Hackabull/prometheus"

	"go.uber.org/zap"
)

// Engine reads form response rows and writes new user records. Existing
// records are never overwritten: a row whose derived ID is already present
// is skipped, which is what makes repeated syncs idempotent.
type Engine struct {
	store  store.Store
	reader sheets.Reader
	log    *zap.Logger
}

// New creates an import engine over the given store and sheet reader
func New(st store.Store, reader sheets.Reader, log *zap.Logger) *Engine {
	return &Engine{store: st, reader: reader, log: log}
}

// SyncFormResponses pulls every row of the given range, maps each data row to
// a user record, and writes the records whose derived IDs are not yet stored.
//
// Only a failed range read aborts the sync. Row-level problems (empty email,
// a failed write) are logged and counted, and the remaining rows are still
// processed. The per-row existence check and write are two separate store
// calls, so a concurrent sync or direct create over the same ID can still
// race to last-write-wins.
func (e *Engine) SyncFormResponses(ctx context.Context, spreadsheetID, rangeName string) error {
	log := e.log.With(
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("range", rangeName),
	)
	log.Info("Starting form response sync")

	rows, err := e.reader.ReadRange(ctx, spreadsheetID, rangeName)
	if err != nil {
		log.Error("Form response sync aborted", zap.Error(err))
		prometheus.RecordSyncRun("error")
		return fmt.Errorf("syncing form responses: %w", err)
	}
	if len(rows) < 2 {
		log.Info("No form responses to import")
		prometheus.RecordSyncRun("success")
		return nil
	}

	headers := normalizeHeaders(rows[0])

	var imported, skipped, failed int
	for i, row := range rows[1:] {
		user := userFromRow(headers, row)
		id := model.DeriveID(user.Email)
		if id == "" {
			log.Warn("Skipping form response without an email", zap.Int("row", i+2))
			failed++
			prometheus.RecordImportRow("failed")
			continue
		}

		if _, exists := e.store.Get(ctx, store.UsersCollection, id); exists {
			skipped++
			prometheus.RecordImportRow("skipped")
			continue
		}

		if !e.store.Set(ctx, store.UsersCollection, id, user.Document()) {
			log.Warn("Failed to store imported registrant",
				zap.String("user_id", id),
				zap.Int("row", i+2))
			failed++
			prometheus.RecordImportRow("failed")
			continue
		}
		imported++
		prometheus.RecordImportRow("imported")
	}

	log.Info("Form response sync completed",
		zap.Int("rows", len(rows)-1),
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed))
	prometheus.RecordSyncRun("success")
	return nil
}

// normalizeHeaders lowercases header cells and replaces spaces with
// underscores, fixing the column-to-field mapping for the whole sheet
func normalizeHeaders(header []string) []string {
	keys := make([]string, len(header))
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		keys[i] = strings.ReplaceAll(key, " ", "_")
	}
	return keys
}

// userFromRow builds the candidate user record for one data row. Short rows
// simply omit trailing fields; unknown columns are dropped. The registration
// source and status are forced regardless of any sheet value.
func userFromRow(headers []string, row []string) *model.User {
	fields := make(map[string]string, len(row))
	for i, cell := range row {
		if i >= len(headers) {
			break
		}
		fields[headers[i]] = cell
	}

	user := &model.User{
		Name:                fields["full_name"],
		Email:               strings.TrimSpace(fields["email"]),
		Age:                 parseIntOrZero(fields["age"]),
		School:              fields["school"],
		Major:               fields["major"],
		GraduationYear:      parseIntOrZero(fields["graduation_year"]),
		GitHub:              fields["github"],
		LinkedIn:            fields["linkedin"],
		Skills:              splitSkills(fields["skills"]),
		DietaryRestrictions: fields["dietary_restrictions"],
		ShirtSize:           fields["shirt_size"],
		RegistrationStatus:  model.StatusPending,
		RegistrationSource:  model.SourceGoogleForm,
	}
	user.ApplyDefaults()
	return user
}

// parseIntOrZero parses a numeric cell, defaulting to 0 on anything
// unparseable so a malformed row never aborts the batch
func parseIntOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// splitSkills splits a comma-separated cell into a trimmed sequence
func splitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}
