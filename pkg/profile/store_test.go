package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xob0t/GoSignature/pkg/signature"
)

const defaultWebsite = "www.example.com"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "profiles"))
	require.NoError(t, err)
	return store
}

func sampleData(t *testing.T) *signature.SignatureData {
	t.Helper()
	data, err := signature.New(signature.Input{
		Name:     "John Doe",
		Position: "Software Engineer",
		Address:  "Anytown, USA",
		Phone:    "+1 555 0100",
		Email:    "john.doe@example.com",
	}, defaultWebsite)
	require.NoError(t, err)
	return data
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	data := sampleData(t)

	require.NoError(t, store.Save("work", data))

	loaded, err := store.Load("work", defaultWebsite)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestStore_SaveWritesOneJSONFilePerProfile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("work", sampleData(t)))

	raw, err := os.ReadFile(filepath.Join(store.Dir(), "work.json"))
	require.NoError(t, err)

	var record signature.Profile
	require.NoError(t, json.Unmarshal(raw, &record))
	assert.Equal(t, "work", record.ProfileName)
	assert.Equal(t, "John Doe", record.Name)

	// No temp files left behind after the atomic replace.
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_SaveOverwritesExisting(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("work", sampleData(t)))

	updated, err := signature.New(signature.Input{
		Name:     "Jane Doe",
		Position: "Staff Engineer",
		Address:  "Anytown, USA",
		Email:    "jane.doe@example.com",
	}, defaultWebsite)
	require.NoError(t, err)
	require.NoError(t, store.Save("work", updated))

	loaded, err := store.Load("work", defaultWebsite)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", loaded.Name())
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "work"},
		{name: "spaces and dashes", input: "work - main office"},
		{name: "trimmed", input: "  work  "},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "path separator", input: "work/evil", wantErr: true},
		{name: "parent traversal", input: "..", wantErr: true},
		{name: "reserved characters", input: "work:profile", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateName(tt.input)
			if tt.wantErr {
				var vErr *signature.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "profile", vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got)
		})
	}
}

func TestStore_ListSorted(t *testing.T) {
	store := newTestStore(t)
	data := sampleData(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, store.Save(name, data))
	}

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("gone", sampleData(t)))
	require.True(t, store.Exists("gone"))

	require.NoError(t, store.Delete("gone"))
	assert.False(t, store.Exists("gone"))

	_, err := store.Load("gone", defaultWebsite)
	assert.Error(t, err)
}

func TestStore_LoadCorruptProfileFails(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "bad.json"), []byte("{not json"), 0o644))

	_, err := store.Load("bad", defaultWebsite)
	assert.Error(t, err)
}

func TestStore_LoadInvalidFieldsFails(t *testing.T) {
	store := newTestStore(t)
	record := signature.Profile{ProfileName: "broken", Name: "X", Position: "Y", Address: "Z", Email: "no-at-sign"}
	raw, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "broken.json"), raw, 0o644))

	_, err = store.Load("broken", defaultWebsite)
	var vErr *signature.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
}
