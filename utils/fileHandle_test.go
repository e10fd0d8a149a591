package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFileURLKeepsSubdirectory(t *testing.T) {
	// Stored paths come from SaveUploadedFile joining the dest dir, so they
	// use the platform separator
	profile := filepath.Join(".", "public", "uploads", "profiles", "20250901120000.png")
	require.Equal(t, "/uploads/profiles/20250901120000.png", GetFileURL(profile))

	property := filepath.Join(".", "public", "uploads", "properties", "20250901120000.jpg")
	require.Equal(t, "/uploads/properties/20250901120000.jpg", GetFileURL(property))
}

func TestGetFileURLEmptyPath(t *testing.T) {
	require.Equal(t, "", GetFileURL(""))
}
