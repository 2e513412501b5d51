package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/ranking"
)

type cli struct {
	t       *testing.T
	dataDir string
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, dataDir: filepath.Join(t.TempDir(), "vault")}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--data-dir", c.dataDir, "--config", filepath.Join(c.dataDir, "none.yaml")))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err, out)
	return out
}

var createdID = regexp.MustCompile(`criado: (\S+)`)

func (c *cli) createLesson(author, idea string) string {
	c.t.Helper()
	out := c.mustRun("create", "--kind", "lesson",
		"--project", "Obra Alfa", "--author", author, "--idea", idea,
		"--context", "Fissuras na laje", "--lesson", "Curar por sete dias", "--actions", "Checklist",
		"--why", "Secou rápido", "--why", "Sem cobertura", "--training")
	m := createdID.FindStringSubmatch(out)
	require.Len(c.t, m, 2, out)
	return m[1]
}

func TestCreate_ValidatesRequiredFlags(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "create", "--kind", "lesson", "--project", "Obra", "--author", "Ana", "--idea", "Cura")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Contains(t, err.Error(), "--context")
	assert.Contains(t, err.Error(), "--lesson")

	_, err = c.run("", "create", "--kind", "memo")
	assert.ErrorIs(t, err, core.ErrInvalidKind)
}

func TestCreateListShow(t *testing.T) {
	c := newCLI(t)
	id := c.createLesson("Ana", "Cura do concreto")

	out := c.mustRun("create", "--kind", "innovation",
		"--project", "Obra Beta", "--author", "Bea", "--idea", "Forma deslizante",
		"--problem", "Retrabalho", "--solution", "Forma reutilizável", "--sector", "Estrutura")
	assert.Contains(t, out, "Registro #002 criado")
	assert.Contains(t, out, "+25 pts")

	out = c.mustRun("list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Forma deslizante")
	assert.Contains(t, lines[1], "Cura do concreto")

	out = c.mustRun("list", "--kind", "lesson", "--search", "ANA")
	assert.Contains(t, out, "Cura do concreto")
	assert.NotContains(t, out, "Forma deslizante")

	out = c.mustRun("list", "--search", "zeta")
	assert.Contains(t, out, "Nenhum registro encontrado.")

	out = c.mustRun("show", id)
	assert.Contains(t, out, "Lição Aprendida #001 (+10 pts)")
	assert.Contains(t, out, "Sem cobertura")
	assert.Contains(t, out, "treinamento=true")

	out = c.mustRun("show", id, "--json")
	var rec core.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, []string{"Secou rápido", "Sem cobertura", "", "", ""}, rec.Lesson.FiveWhys)

	_, err := c.run("", "show", "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestEdit(t *testing.T) {
	c := newCLI(t)
	id := c.createLesson("Ana", "Cura")

	out := c.mustRun("edit", id, "--idea", "Cura úmida", "--status", string(core.StatusValidated))
	assert.Contains(t, out, "Registro #001 atualizado")

	out = c.mustRun("show", id, "--json")
	var rec core.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Cura úmida", rec.Idea)
	assert.Equal(t, core.StatusValidated, rec.Status)
	assert.Equal(t, 10, rec.Points)
	assert.Equal(t, "Fissuras na laje", rec.Lesson.Context)

	_, err := c.run("", "edit", id, "--status", string(core.StatusPublished))
	assert.ErrorIs(t, err, core.ErrInvalidStatus)
}

func TestDelete_AsksForConfirmation(t *testing.T) {
	c := newCLI(t)
	id := c.createLesson("Ana", "Cura")

	out, err := c.run("n\n", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Exclusão cancelada.")
	assert.Contains(t, c.mustRun("list"), "Cura")

	out, err = c.run("s\n", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Registro excluído")
	assert.Contains(t, c.mustRun("list"), "Nenhum registro encontrado.")

	_, err = c.run("", "delete", id, "--yes")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRankingAndExport(t *testing.T) {
	c := newCLI(t)
	c.createLesson("Ana", "a")
	c.createLesson("Bea", "b")
	c.createLesson("Ana", "c")

	out := c.mustRun("ranking")
	assert.Contains(t, out, "Total: 30 / 5000 pts (0.6%)")
	assert.Less(t, strings.Index(out, "Ana"), strings.Index(out, "Bea"))

	var board ranking.Board
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("ranking", "--json")), &board))
	assert.Equal(t, []core.RankingEntry{{Name: "Ana", Points: 20, Count: 2}, {Name: "Bea", Points: 10, Count: 1}}, board.Entries)

	var exported []core.Record
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("export")), &exported))
	assert.Len(t, exported, 3)

	var asYAML []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(c.mustRun("export", "--format", "yaml")), &asYAML))
	require.Len(t, asYAML, 3)
	assert.Equal(t, "lesson", asYAML[0]["type"])

	file := filepath.Join(t.TempDir(), "acervo.json")
	c.mustRun("export", "-o", file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"registrationNumber": 3`)

	_, err = c.run("", "export", "--format", "csv")
	assert.Error(t, err)
}

// mp4Header is a minimal ftyp box, enough for content sniffing.
var mp4Header = []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2', 0, 0, 0, 0, 'm', 'p', '4', '2', 'i', 's', 'o', 'm'}

func TestCreate_AttachGlob(t *testing.T) {
	c := newCLI(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fotos", "2024"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fotos", "a.png"), []byte("png"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fotos", "2024", "b.mp4"), mp4Header, 0644))

	out := c.mustRun("create", "--kind", "innovation",
		"--project", "Obra", "--author", "Ana", "--idea", "Drone",
		"--problem", "Inspeção lenta", "--solution", "Drone",
		"--attach", filepath.Join(dir, "fotos", "**", "*.*"))
	id := createdID.FindStringSubmatch(out)[1]

	var rec core.Record
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("show", id, "--json")), &rec))
	require.Len(t, rec.Media, 2)
	kinds := []core.MediaKind{rec.Media[0].Kind, rec.Media[1].Kind}
	assert.ElementsMatch(t, []core.MediaKind{core.MediaImage, core.MediaVideo}, kinds)
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	c := newCLI(t)
	c.createLesson("Ana", "Cura")

	_, err := c.run("", "create", "--read-only", "--kind", "lesson",
		"--project", "P", "--author", "A", "--idea", "I",
		"--context", "C", "--lesson", "L", "--actions", "X")
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.Len(t, strings.Split(strings.TrimSpace(c.mustRun("list")), "\n"), 1)
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun("version"), "acervo version ")
}
