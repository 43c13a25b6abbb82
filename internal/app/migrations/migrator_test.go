package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionFromFilename(t *testing.T) {
	assert.Equal(t, "001", versionFromFilename("001_init.sql"))
	assert.Equal(t, "002", versionFromFilename("migrations/002_certificate_info.sql"))
	assert.Equal(t, "010", versionFromFilename("/abs/path/010_add_indexes.sql"))
}
