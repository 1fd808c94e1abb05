package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"stylescope/common"
	"stylescope/compiler"
	"stylescope/config"
	"stylescope/css"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Version: 1,
		Hash:    config.HashConfig{Length: 6, UseScopeName: true, UseCodeSize: true},
		Module: config.ModuleConfig{
			ScanRoot:        filepath.Join(dir, "src"),
			IntermediateDir: filepath.Join(dir, "target", "sass"),
		},
		Compiler: config.CompilerConfig{Kind: common.CompilerKindPassthrough},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newBuilder(t *testing.T, cfg *config.Config) *Builder {
	t.Helper()
	return NewBuilder(cfg, compiler.Passthrough{}, nil, zaptest.NewLogger(t))
}

func TestModuleLoader_Merge(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sass")
	writeFile(t, filepath.Join(dir, "m.scss"), "stale")

	ml := NewModuleLoader(dir, common.ModuleCollisionMerge, zaptest.NewLogger(t))
	require.NoError(t, ml.Load("m.scss", "a"))
	assert.Equal(t, "\na\n", readFile(t, ml.Path("m.scss")))

	require.NoError(t, ml.Load("m.scss", "b"))
	require.NoError(t, ml.Load("other.scss", "c"))
	assert.Equal(t, "\na\n\nb\n", readFile(t, ml.Path("m.scss")))
	assert.Equal(t, []string{"m.scss", "other.scss"}, ml.Names())
}

func TestModuleLoader_Error(t *testing.T) {
	ml := NewModuleLoader(t.TempDir(), common.ModuleCollisionError, nil)
	require.NoError(t, ml.Load("m", "a"))

	err := ml.Load("m", "b")
	var mce *ModuleCollisionError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, "m", mce.Module)
	assert.Equal(t, "\na\n", readFile(t, ml.Path("m")))
}

func TestModuleLoader_InvalidName(t *testing.T) {
	ml := NewModuleLoader(t.TempDir(), common.ModuleCollisionMerge, nil)
	for _, name := range []string{"", ".", "..", "../escape.scss", "dir/m.scss", `dir\m.scss`} {
		assert.ErrorIs(t, ml.Load(name, "x"), ErrInvalidModuleName, "name %q", name)
	}
}

func TestScopeName(t *testing.T) {
	tests := map[string]string{
		"button.scss":                                 "button",
		filepath.Join("components", "card-list.scss"): "componentsCardList",
		"9-patch.sass":                                "n9Patch",
	}
	for in, want := range tests {
		assert.Equal(t, want, ScopeName(in), "ScopeName(%q)", in)
	}
}

func TestDiscover(t *testing.T) {
	cfg := testConfig(t)
	root := cfg.Module.ScanRoot
	writeFile(t, filepath.Join(root, "a.scss"), ".a{}")
	writeFile(t, filepath.Join(root, "b", "_partial.scss"), "@mixin m{}")
	writeFile(t, filepath.Join(root, "b", "c.sass"), ".c\n  color: red\n")
	writeFile(t, filepath.Join(root, "readme.md"), "# nothing")
	// intermediate directory inside scan root must not be scanned
	cfg.Module.IntermediateDir = filepath.Join(root, "gen")
	writeFile(t, filepath.Join(root, "gen", "x.scss"), ".x{}")
	if err := os.Symlink(filepath.Join(root, "a.scss"), filepath.Join(root, "link.scss")); err != nil {
		t.Logf("symlinks are not supported: %v", err)
	}

	sources, err := discover(context.Background(), root, []string{cfg.Module.IntermediateDir}, zaptest.NewLogger(t))
	require.NoError(t, err)

	var names []string
	for _, s := range sources {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"a", "bC"}, names)
	assert.Equal(t, common.SyntaxSass, sources[1].Syntax)
	assert.Equal(t, "bC.css", sources[1].File)
}

func TestDiscover_NameCollision(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x-y.scss"), ".a{}")
	writeFile(t, filepath.Join(root, "xY.scss"), ".b{}")

	_, err := discover(context.Background(), root, nil, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrScopeNameCollision)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := discover(context.Background(), filepath.Join(t.TempDir(), "none"), nil, zaptest.NewLogger(t))
	var fse *FilesystemError
	assert.ErrorAs(t, err, &fse)
}

func TestBuilder_Bundle(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Dir(cfg.Module.ScanRoot)
	writeFile(t, filepath.Join(cfg.Module.ScanRoot, "a.scss"), "X")
	writeFile(t, filepath.Join(cfg.Module.ScanRoot, "b.scss"), "Y")
	writeFile(t, filepath.Join(dir, "prelude.css"), "P")

	cfg.Output.PreludeFiles = []string{filepath.Join(dir, "prelude.css")}
	cfg.Output.BundlePath = filepath.Join(dir, "out", "bundle.css")
	writeFile(t, cfg.Output.BundlePath, "OLD CONTENT")

	b := newBuilder(t, cfg)
	require.NoError(t, b.Run(context.Background()))
	assert.Equal(t, PhaseOutputWritten, b.Phase())

	// prelude is written once ahead of all scopes
	assert.Equal(t, "PXY", readFile(t, cfg.Output.BundlePath))
}

func TestBuilder_PreludeOrder(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Dir(cfg.Module.ScanRoot)
	require.NoError(t, os.MkdirAll(cfg.Module.ScanRoot, 0755))
	writeFile(t, filepath.Join(dir, "raw.css"), "P")
	writeFile(t, filepath.Join(dir, "compiled.scss"), "Q")
	cfg.Output.PreludeFiles = []string{filepath.Join(dir, "raw.css"), filepath.Join(dir, "compiled.scss")}

	b := newBuilder(t, cfg)
	require.NoError(t, b.LoadPreludes(context.Background()))
	assert.Equal(t, "QP", b.Prelude())
}

func TestBuilder_PreludeUnknownSyntax(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.PreludeFiles = []string{"theme.less"}

	b := newBuilder(t, cfg)
	require.Error(t, b.LoadPreludes(context.Background()))
	assert.Equal(t, PhaseAborted, b.Phase())
}

func TestBuilder_Modules(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Dir(cfg.Module.ScanRoot)
	require.NoError(t, os.MkdirAll(cfg.Module.ScanRoot, 0755))
	writeFile(t, filepath.Join(dir, "lib", "_colors.scss"), "$red: #f00;")
	cfg.Module.ExtraModules = []string{filepath.Join(dir, "lib", "_colors.scss")}

	b := newBuilder(t, cfg)
	require.NoError(t, b.LoadPreludes(context.Background(),
		Module{Name: "_colors.scss", Code: "$blue: #00f;"},
		Module{Name: "_mixins.scss", Code: "@mixin m {}"},
	))

	got := readFile(t, filepath.Join(cfg.Module.IntermediateDir, "_colors.scss"))
	assert.Equal(t, "\n$red: #f00;\n\n$blue: #00f;\n", got)
	assert.FileExists(t, filepath.Join(cfg.Module.IntermediateDir, "_mixins.scss"))
}

func TestBuilder_ModuleCollision(t *testing.T) {
	cfg := testConfig(t)
	cfg.Module.CollisionPolicy = common.ModuleCollisionError

	b := newBuilder(t, cfg)
	err := b.Run(context.Background(), Module{Name: "m.scss", Code: "a"}, Module{Name: "m.scss", Code: "b"})

	var mce *ModuleCollisionError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, PhaseAborted, b.Phase())
}

func collidingConfig(t *testing.T, policy common.HashCollision) *config.Config {
	cfg := testConfig(t)
	// hash depends on text only, equal sources produce equal hashes
	cfg.Hash = config.HashConfig{Length: 6, UseCodeText: true, CollisionPolicy: policy}
	writeFile(t, filepath.Join(cfg.Module.ScanRoot, "a.scss"), ".same{color:red;}")
	writeFile(t, filepath.Join(cfg.Module.ScanRoot, "b.scss"), ".same{color:red;}")
	dir := filepath.Dir(cfg.Module.ScanRoot)
	cfg.Output.BundlePath = filepath.Join(dir, "out", "bundle.css")
	cfg.Output.ScopesDir = filepath.Join(dir, "out", "scopes")
	return cfg
}

func TestBuilder_HashCollisionError(t *testing.T) {
	cfg := collidingConfig(t, common.HashCollisionError)

	b := newBuilder(t, cfg)
	err := b.Run(context.Background())

	var hce *HashCollisionError
	require.ErrorAs(t, err, &hce)
	assert.Equal(t, "b", hce.Scope)
	assert.Equal(t, "a", hce.Other)
	assert.Equal(t, PhaseAborted, b.Phase())
	assert.Nil(t, b.Scopes())

	assert.NoFileExists(t, cfg.Output.BundlePath)
	assert.NoDirExists(t, cfg.Output.ScopesDir)
}

func TestBuilder_HashCollisionIgnore(t *testing.T) {
	cfg := collidingConfig(t, common.HashCollisionIgnore)

	b := newBuilder(t, cfg)
	require.NoError(t, b.Run(context.Background()))

	scopes := b.Scopes()
	require.Len(t, scopes, 2)
	assert.Equal(t, scopes[0].Hash, scopes[1].Hash)

	assert.Equal(t, scopes[0].CSS+scopes[1].CSS, readFile(t, cfg.Output.BundlePath))
	assert.Equal(t, scopes[0].CSS, readFile(t, filepath.Join(cfg.Output.ScopesDir, "a.css")))
	assert.Equal(t, scopes[1].CSS, readFile(t, filepath.Join(cfg.Output.ScopesDir, "b.css")))
	assert.Equal(t, "."+string(scopes[0].Hash)+".same{color:red;}", scopes[0].CSS)
}

func TestBuilder_Manifest(t *testing.T) {
	cfg := testConfig(t)
	writeFile(t, filepath.Join(cfg.Module.ScanRoot, "widgets", "card.scss"), ".card{ &-dark{color:black;} #title{} }")
	cfg.Output.ManifestPath = filepath.Join(filepath.Dir(cfg.Module.ScanRoot), "out", "idents.yaml")

	b := newBuilder(t, cfg)
	require.NoError(t, b.Run(context.Background()))

	m, err := ReadManifest(cfg.Output.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, common.ScopingModeComposition, m.Mode)

	table, ok := m.Scope("widgetsCard")
	require.True(t, ok)
	assert.Equal(t, string(b.Scopes()[0].Hash), table.Wrapper)

	card, ok := table.Lookup("card")
	require.True(t, ok)
	assert.Equal(t, table.Wrapper+" card", card.HTML)

	title, ok := table.Lookup("thetitle")
	require.True(t, ok)
	assert.Equal(t, table.Wrapper+"-title", title.HTML)

	require.Len(t, table.Suffixes, 1)
	assert.Equal(t, "-dark", table.Suffixes[0].Suffix)
}

func TestBuilder_ByteOrderMark(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Dir(cfg.Module.ScanRoot)
	writeFile(t, filepath.Join(cfg.Module.ScanRoot, "a.scss"), "\ufeff.a{color:red}")
	writeFile(t, filepath.Join(dir, "prelude.css"), "\ufeffP")
	cfg.Output.PreludeFiles = []string{filepath.Join(dir, "prelude.css")}
	cfg.Output.BundlePath = filepath.Join(dir, "out", "bundle.css")

	b := newBuilder(t, cfg)
	require.NoError(t, b.Run(context.Background()))

	scopes := b.Scopes()
	require.Len(t, scopes, 1)
	assert.Equal(t, "."+string(scopes[0].Hash)+".a{color:red}", scopes[0].CSS)
	assert.Equal(t, "P"+scopes[0].CSS, readFile(t, cfg.Output.BundlePath))

	require.Len(t, scopes[0].Table.Members, 1)
	assert.Equal(t, "a", scopes[0].Table.Members[0].Ident)
}

func outputConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	cfg := testConfig(t)
	out := filepath.Join(filepath.Dir(cfg.Module.ScanRoot), "out")
	cfg.Output.ScopesDir = filepath.Join(out, "scopes")
	cfg.Output.BundlePath = filepath.Join(out, "bundle.css")
	cfg.Output.ManifestPath = filepath.Join(out, "idents.yaml")
	writeFile(t, filepath.Join(cfg.Module.ScanRoot, "a.scss"), ".a{}")
	return cfg, out
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestBuilder_OutputAllOrNothing(t *testing.T) {
	cfg, out := outputConfig(t)
	// bundle target is occupied by a directory
	writeFile(t, filepath.Join(cfg.Output.BundlePath, "keep"), "x")

	b := newBuilder(t, cfg)
	err := b.Run(context.Background())

	var fse *FilesystemError
	require.ErrorAs(t, err, &fse)
	assert.ErrorIs(t, err, ErrOutputIsDir)
	assert.Equal(t, cfg.Output.BundlePath, fse.Path)
	assert.Equal(t, PhaseAborted, b.Phase())

	assert.NoDirExists(t, cfg.Output.ScopesDir)
	assert.NoFileExists(t, cfg.Output.ManifestPath)
	assert.Equal(t, []string{"bundle.css"}, dirNames(t, out))
}

func TestBuilder_OutputScopesDirIsFile(t *testing.T) {
	cfg, out := outputConfig(t)
	writeFile(t, cfg.Output.ScopesDir, "x")

	b := newBuilder(t, cfg)
	err := b.Run(context.Background())
	assert.ErrorIs(t, err, ErrOutputNotDir)
	assert.Equal(t, []string{"scopes"}, dirNames(t, out))
}

func TestBuilder_OutputReplaced(t *testing.T) {
	cfg, out := outputConfig(t)
	writeFile(t, filepath.Join(cfg.Output.ScopesDir, "a.css"), "OLD")
	writeFile(t, filepath.Join(cfg.Output.ScopesDir, "gone.css"), "OLD")
	writeFile(t, cfg.Output.BundlePath, "OLD")
	writeFile(t, cfg.Output.ManifestPath, "OLD")

	b := newBuilder(t, cfg)
	require.NoError(t, b.Run(context.Background()))

	code := b.Scopes()[0].CSS
	assert.Equal(t, code, readFile(t, filepath.Join(cfg.Output.ScopesDir, "a.css")))
	assert.Equal(t, code, readFile(t, cfg.Output.BundlePath))
	_, err := ReadManifest(cfg.Output.ManifestPath)
	require.NoError(t, err)

	// nothing is left from staging
	assert.Equal(t, []string{"bundle.css", "idents.yaml", "scopes"}, dirNames(t, out))
	assert.Equal(t, []string{"a.css", "gone.css"}, dirNames(t, cfg.Output.ScopesDir))

	info, err := os.Stat(cfg.Output.BundlePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestBuilder_ParseError(t *testing.T) {
	cfg := testConfig(t)
	writeFile(t, filepath.Join(cfg.Module.ScanRoot, "broken.scss"), ".a { color: red;")

	b := newBuilder(t, cfg)
	err := b.Run(context.Background())

	var pe *css.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PhaseAborted, b.Phase())
}

func TestBuilder_PhaseOrder(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Module.ScanRoot, 0755))
	ctx := context.Background()

	b := newBuilder(t, cfg)
	assert.ErrorIs(t, b.Compile(ctx), ErrPhase)
	assert.ErrorIs(t, b.WriteOutput(ctx), ErrPhase)
	assert.Equal(t, PhaseInit, b.Phase())

	require.NoError(t, b.LoadPreludes(ctx))
	assert.ErrorIs(t, b.LoadPreludes(ctx), ErrPhase)
	require.NoError(t, b.Discover(ctx))
	require.NoError(t, b.Compile(ctx))
	require.NoError(t, b.WriteOutput(ctx))
	assert.ErrorIs(t, b.Discover(ctx), ErrPhase)
}

func TestBuilder_Aborted(t *testing.T) {
	cfg := testConfig(t)
	// scan root does not exist
	b := newBuilder(t, cfg)
	ctx := context.Background()

	require.NoError(t, b.LoadPreludes(ctx))
	var fse *FilesystemError
	require.ErrorAs(t, b.Discover(ctx), &fse)
	assert.ErrorIs(t, b.Compile(ctx), ErrAborted)
}

func TestBuilder_Cancelled(t *testing.T) {
	cfg := testConfig(t)
	writeFile(t, filepath.Join(cfg.Module.ScanRoot, "a.scss"), ".a{}")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := newBuilder(t, cfg)
	err := b.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled), "error = %v", err)
}
