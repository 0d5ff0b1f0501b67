package repository

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadMigrationDDL(t *testing.T) string {
	t.Helper()
	dir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var ddl strings.Builder
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		require.NoError(t, err)
		ddl.Write(raw)
		ddl.WriteString("\n")
	}
	return ddl.String()
}

var columnName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// tableColumns extracts the column names of one CREATE TABLE block, skipping
// table-level constraint lines.
func tableColumns(t *testing.T, ddl, table string) map[string]bool {
	t.Helper()
	block := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS ` + table + `\s*\((.*?)\n\);`)
	match := block.FindStringSubmatch(ddl)
	require.NotNil(t, match, "migrations define no table %q", table)

	columns := make(map[string]bool)
	for _, line := range strings.Split(match[1], "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || !columnName.MatchString(fields[0]) {
			continue
		}
		columns[fields[0]] = true
	}
	return columns
}

func splitColumns(list string) []string {
	parts := strings.Split(list, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// The repositories read and write fixed column lists; every one of those
// columns must exist in the shipped migrations or the first query against a
// fresh database fails with an undefined-column error.
func TestMigrationsCoverRepositoryColumns(t *testing.T) {
	ddl := loadMigrationDDL(t)

	cases := map[string][]string{
		"users":      splitColumns(userColumns),
		"workspaces": splitColumns(workspaceColumns),
		"workspace_members": {
			"id", "workspace_id", "user_id", "role", "is_deleted", "deleted_at", "deleted_by",
			"created_at", "created_by", "updated_at", "updated_by",
		},
		"projects": splitColumns(projectColumns),
		"workflow_statuses": {
			"id", "project_id", "name", "description", "color", "category", "sort_order",
			"is_default", "created_at", "created_by", "updated_at", "updated_by",
		},
		"status_transitions": {
			"id", "from_status_id", "to_status_id", "name", "auto_assign_user_id",
			"requires_comment", "created_at", "created_by", "updated_at", "updated_by",
		},
		"custom_field_definitions": {
			"id", "project_id", "name", "field_type", "is_required", "options", "sort_order",
			"created_at", "created_by", "updated_at", "updated_by",
		},
		"sprints": splitColumns(sprintColumns),
		"tasks":   splitColumns(taskColumns),
		"task_history": {
			"id", "task_id", "field_name", "old_value", "new_value", "created_at", "created_by",
		},
		"task_comments":    splitColumns(commentColumns),
		"task_attachments": splitColumns(attachmentColumns),
		"labels":           splitColumns(labelColumns),
		"task_labels": {
			"id", "task_id", "label_id", "created_at", "created_by",
		},
	}

	for table, expected := range cases {
		t.Run(table, func(t *testing.T) {
			defined := tableColumns(t, ddl, table)
			for _, column := range expected {
				assert.True(t, defined[column], "table %s is missing column %s", table, column)
			}
		})
	}
}
