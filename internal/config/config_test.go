package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
app:
  name: catalog-api
  env: local
  http_addr: ":8080"
http:
  read_timeout: 5s
  write_timeout: 10s
  idle_timeout: 60s
  shutdown_timeout: 15s
store:
  kind: mongo
mongo:
  uri: mongodb://localhost:27017
  database: catalog
  orders_collection: orders
  products_collection: products
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad_Base(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", baseYAML)

	cfg, err := Load(dir, "local")
	require.NoError(t, err)

	assert.Equal(t, "catalog-api", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, StoreMongo, cfg.Store.Kind)
	assert.Equal(t, "orders", cfg.Mongo.OrdersCollection)
}

func TestLoad_EnvironmentOverlayWins(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", baseYAML)
	writeConfig(t, dir, "staging.yaml", "mongo:\n  database: catalog_staging\n")

	cfg, err := Load(dir, "staging")
	require.NoError(t, err)

	assert.Equal(t, "catalog_staging", cfg.Mongo.Database)
	// Untouched keys keep their base values.
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
}

func TestLoad_EnvVarsWinOverFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", baseYAML)

	t.Setenv("CATALOG_MONGO__URI", "mongodb://db.internal:27017")
	t.Setenv("CATALOG_APP__HTTP_ADDR", ":9090")

	cfg, err := Load(dir, "local")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.URI)
	assert.Equal(t, ":9090", cfg.App.HTTPAddr)
}

func TestLoad_MissingBaseFails(t *testing.T) {
	_, err := Load(t.TempDir(), "local")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.App.HTTPAddr = ":8080"
		c.Store.Kind = StoreMongo
		c.Mongo.URI = "mongodb://localhost:27017"
		c.Mongo.Database = "catalog"
		c.Mongo.OrdersCollection = "orders"
		c.Mongo.ProductsCollection = "products"
		return c
	}

	t.Run("valid mongo", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("memory needs no mongo settings", func(t *testing.T) {
		var c Config
		c.App.HTTPAddr = ":8080"
		c.Store.Kind = StoreMemory
		assert.NoError(t, c.Validate())
	})

	t.Run("missing addr", func(t *testing.T) {
		c := valid()
		c.App.HTTPAddr = ""
		assert.Error(t, c.Validate())
	})

	t.Run("unknown store kind", func(t *testing.T) {
		c := valid()
		c.Store.Kind = "dynamo"
		assert.Error(t, c.Validate())
	})

	t.Run("mongo without uri", func(t *testing.T) {
		c := valid()
		c.Mongo.URI = ""
		assert.Error(t, c.Validate())
	})

	t.Run("mongo without collections", func(t *testing.T) {
		c := valid()
		c.Mongo.ProductsCollection = ""
		assert.Error(t, c.Validate())
	})
}
