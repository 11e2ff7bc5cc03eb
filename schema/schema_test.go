package schema

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemas(t *testing.T) {
	t.Run("follow-up schema has sixteen fields", func(t *testing.T) {
		s := For(Followup)
		assert.Equal(t, 16, s.Len())
		assert.Equal(t, "clientName", s.Fields()[0].Key)
		assert.Equal(t, "expectedClosureDate", s.Fields()[15].Key)
		assert.Equal(t, "currentStatus", s.StatusKey())
	})

	t.Run("land schema has fourteen fields", func(t *testing.T) {
		s := For(Land)
		assert.Equal(t, 14, s.Len())
		assert.Equal(t, "landId", s.Fields()[0].Key)
		assert.Equal(t, "status", s.StatusKey())
	})

	t.Run("primary columns are the first four fields", func(t *testing.T) {
		var keys []string
		for _, f := range For(Land).Primary() {
			keys = append(keys, f.Key)
		}
		assert.Equal(t, []string{"landId", "location", "landArea", "source"}, keys)
	})

	t.Run("status key is part of each schema", func(t *testing.T) {
		for _, d := range Datasets {
			f, ok := For(d).Field(d.StatusKey())
			require.True(t, ok, d)
			assert.Equal(t, Text, f.Kind)
		}
	})

	t.Run("fields are copied out", func(t *testing.T) {
		fields := For(Followup).Fields()
		fields[0].Key = "mutated"
		assert.Equal(t, "clientName", For(Followup).Fields()[0].Key)
	})
}

func TestParseDataset(t *testing.T) {
	tt := []struct {
		in      string
		want    Dataset
		wantErr bool
	}{
		{in: "followup", want: Followup},
		{in: " Land ", want: Land},
		{in: "LAND", want: Land},
		{in: "leads", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			d, err := ParseDataset(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownDataset))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, d)
		})
	}
}

func TestDatasetDescriptors(t *testing.T) {
	assert.Equal(t, "re_full_followup_records_v1", Followup.StorageKey())
	assert.Equal(t, "re_full_land_records_v1", Land.StorageKey())
	assert.Equal(t, "FollowUp", Followup.SheetName())
	assert.Equal(t, "Land", Land.SheetName())
	assert.Equal(t, "Land Record", Land.Title())
	assert.False(t, Dataset("x").Valid())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "tel", Phone.String())
	assert.Equal(t, "textarea", Multiline.String())
	assert.Equal(t, "unknown", Kind(42).String())

	k, err := ParseKind("date")
	require.NoError(t, err)
	assert.Equal(t, Date, k)

	_, err = ParseKind("checkbox")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}
