package common

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/crypto/pbkdf2"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	snowflakeNode *snowflake.Node
	nodeOnce      sync.Once
)

// UUIDint64 generates a unique int64 id
func UUIDint64() int64 {
	nodeOnce.Do(func() {
		var err error
		snowflakeNode, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode.Generate().Int64()
}

// GetSecretSalt returns the password salt, overridable by environment
func GetSecretSalt() string {
	salt := os.Getenv("PRIMEHOMES_SECRET_SALT")
	if salt == "" {
		salt = "primehomes-salt"
	}
	return salt
}

// Sha256HashWithSalt derives a hex-encoded password hash
func Sha256HashWithSalt(src string, salt string) string {
	key := pbkdf2.Key([]byte(src), []byte(salt), 4096, 32, sha256.New)
	return hex.EncodeToString(key)
}

// FileExists checks if a path exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
