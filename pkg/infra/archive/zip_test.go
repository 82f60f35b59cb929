package archive_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/texpack/pkg/domain/model"
	"github.com/m-mizutani/texpack/pkg/domain/types"
	"github.com/m-mizutani/texpack/pkg/infra/archive"
)

// readArchive returns entry names in order and their contents
func readArchive(t *testing.T, data []byte) ([]string, map[string][]byte) {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	gt.NoError(t, err)

	names := []string{}
	contents := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		gt.NoError(t, err)
		b, err := io.ReadAll(rc)
		gt.NoError(t, err)
		_ = rc.Close()

		names = append(names, f.Name)
		contents[f.Name] = b
	}
	return names, contents
}

func TestAssemble(t *testing.T) {
	model3 := append([]byte{0x00, 0xff}, bytes.Repeat([]byte("wall01.dds"), 100)...)

	entries := []model.FetchedEntry{
		{Name: "unit_x.m3", Data: model3},
		{Name: "floor02.dds", Data: []byte("DDS floor")},
		{Name: "wall01.dds", Data: []byte("DDS wall")},
	}

	data, err := archive.Assemble(entries)
	gt.NoError(t, err)

	names, contents := readArchive(t, data)
	gt.Equal(t, names, []string{"unit_x.m3", "floor02.dds", "wall01.dds"})
	gt.Equal(t, contents["unit_x.m3"], model3)
	gt.Equal(t, string(contents["wall01.dds"]), "DDS wall")
}

func TestAssemble_Empty(t *testing.T) {
	data, err := archive.Assemble(nil)
	gt.NoError(t, err)

	names, _ := readArchive(t, data)
	gt.Equal(t, len(names), 0)
}

func TestAssemble_DuplicateName(t *testing.T) {
	data, err := archive.Assemble([]model.FetchedEntry{
		{Name: "a.dds", Data: []byte("1")},
		{Name: "a.dds", Data: []byte("2")},
	})
	gt.Error(t, err)
	gt.Value(t, data).Nil()
	gt.True(t, goerr.HasTag(err, types.ErrTagArchiveAssembly))
}

func TestAssemble_EmptyName(t *testing.T) {
	_, err := archive.Assemble([]model.FetchedEntry{{Name: "", Data: []byte("1")}})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagArchiveAssembly))
}

func TestAssemble_CompressionLevel(t *testing.T) {
	payload := bytes.Repeat([]byte("texture"), 1000)
	entries := []model.FetchedEntry{{Name: "big.dds", Data: payload}}

	stored, err := archive.Assemble(entries, archive.WithCompressionLevel(flate.NoCompression))
	gt.NoError(t, err)
	best, err := archive.Assemble(entries, archive.WithCompressionLevel(flate.BestCompression))
	gt.NoError(t, err)
	gt.True(t, len(best) < len(stored))

	_, contents := readArchive(t, best)
	gt.Equal(t, contents["big.dds"], payload)

	_, err = archive.Assemble(entries, archive.WithCompressionLevel(42))
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagArchiveAssembly))
}

func TestAssemble_Modified(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	data, err := archive.Assemble([]model.FetchedEntry{{Name: "a.dds", Data: []byte("x")}},
		archive.WithModified(ts))
	gt.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	gt.NoError(t, err)
	gt.True(t, zr.File[0].Modified.Equal(ts))
}
