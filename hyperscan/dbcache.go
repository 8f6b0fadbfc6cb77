package hyperscan

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	hs "github.com/flier/gohs/hyperscan"
)

// DbCache is a cache for pre-built Hyperscan databases. Compiling a database
// is by far the most expensive part of creating a matcher, so databases are
// persisted keyed by the expression and flags they were compiled from.
type DbCache interface {
	cacheID(p *hs.Pattern) string
	loadFromCache(cacheID string) hs.BlockDatabase
	saveToCache(cacheID string, db hs.BlockDatabase)
}

type dbCacheImpl struct {
	fs CacheFilesystem
}

// NewDbCache creates a DbCache using the given file system interface.
func NewDbCache(fs CacheFilesystem) DbCache {
	return &dbCacheImpl{fs: fs}
}

func (c *dbCacheImpl) cacheID(p *hs.Pattern) string {
	hash := sha1.New()
	io.WriteString(hash, p.String())
	io.WriteString(hash, strconv.Itoa(int(p.Flags)))
	return hex.EncodeToString(hash.Sum(nil))
}

func (c *dbCacheImpl) loadFromCache(cacheID string) hs.BlockDatabase {
	dir := c.fs.getCacheFileDirectory()
	if !c.fs.exists(dir) {
		return nil
	}

	bb, err := c.fs.readFile(filepath.Join(dir, cacheID))
	if err != nil {
		return nil
	}

	db, err := hs.UnmarshalBlockDatabase(bb)
	if err != nil {
		return nil
	}

	return db
}

func (c *dbCacheImpl) saveToCache(cacheID string, db hs.BlockDatabase) {
	dir := c.fs.getCacheFileDirectory()
	c.fs.createDirIfNotExist(dir)

	bb, err := db.Marshal()
	if err != nil {
		return
	}

	c.fs.writeFile(filepath.Join(dir, cacheID), bb, 0644)
}

// CacheFilesystem is an interface with the functionality the cache needs to
// persist to a filesystem.
type CacheFilesystem interface {
	readFile(filename string) ([]byte, error)
	writeFile(filename string, data []byte, perm os.FileMode) error
	createDirIfNotExist(dir string)
	getCacheFileDirectory() string
	exists(filename string) bool
}

type cacheFilesystemImpl struct{}

// NewCacheFileSystem creates a CacheFilesystem that uses the real file
// system, with the cache directory next to the running executable.
func NewCacheFileSystem() CacheFilesystem {
	return &cacheFilesystemImpl{}
}

func (c *cacheFilesystemImpl) readFile(filename string) ([]byte, error) {
	return ioutil.ReadFile(filename)
}

func (c *cacheFilesystemImpl) writeFile(filename string, data []byte, perm os.FileMode) error {
	return ioutil.WriteFile(filename, data, perm)
}

func (c *cacheFilesystemImpl) createDirIfNotExist(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func (c *cacheFilesystemImpl) getCacheFileDirectory() string {
	execPath, _ := os.Executable()
	return filepath.Join(filepath.Dir(execPath), "hyperscancache")
}

func (c *cacheFilesystemImpl) exists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
