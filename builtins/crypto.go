package builtins

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/ripemd160"

	"echo/types"
)

const defaultHashAlgo = "sha256"

var hashAlgorithms = map[string]func() hash.Hash{
	"md5":       md5.New,
	"sha1":      sha1.New,
	"sha224":    sha256.New224,
	"sha256":    sha256.New,
	"sha384":    sha512.New384,
	"sha512":    sha512.New,
	"ripemd160": ripemd160.New,
}

// hashAlgorithm resolves the optional algorithm argument at args[i]
func hashAlgorithm(args []types.Value, i int) (func() hash.Hash, types.Result) {
	name := defaultHashAlgo
	if len(args) > i {
		s, ok := args[i].(types.StrValue)
		if !ok {
			return nil, types.Errf(types.E_TYPE, "hash algorithm must be a string, got %s", types.TypeName(args[i]))
		}
		name = strings.ToLower(s.Value())
	}
	newHash, ok := hashAlgorithms[name]
	if !ok {
		return nil, types.Errf(types.E_INVARG, "unknown hash algorithm %q", name)
	}
	return newHash, types.Ok(types.Null)
}

func hexDigest(h hash.Hash, data string) types.Result {
	h.Write([]byte(data))
	return types.Ok(types.NewStr(strings.ToUpper(hex.EncodeToString(h.Sum(nil)))))
}

// string_hash(str [, algo]) -> uppercase hex digest, sha256 by default
func builtinStringHash(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) < 1 || len(args) > 2 {
		return types.Err(types.E_ARGS)
	}
	str, ok := args[0].(types.StrValue)
	if !ok {
		return types.Errf(types.E_TYPE, "string_hash() requires a string, got %s", types.TypeName(args[0]))
	}
	newHash, res := hashAlgorithm(args, 1)
	if res.IsError() {
		return res
	}
	return hexDigest(newHash(), str.Value())
}

// string_hmac(str, key [, algo]) -> uppercase hex MAC
func builtinStringHmac(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) < 2 || len(args) > 3 {
		return types.Err(types.E_ARGS)
	}
	str, ok1 := args[0].(types.StrValue)
	key, ok2 := args[1].(types.StrValue)
	if !ok1 || !ok2 {
		return types.Errf(types.E_TYPE, "string_hmac() requires string data and key")
	}
	newHash, res := hashAlgorithm(args, 2)
	if res.IsError() {
		return res
	}
	return hexDigest(hmac.New(newHash, []byte(key.Value())), str.Value())
}
