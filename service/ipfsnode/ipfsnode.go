package ipfsnode

import (
	"bytes"
	"time"

	ipfsapi "github.com/ipfs/go-ipfs-api"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain/file"
)

type ipfsNodeStorage struct {
	shell *ipfsapi.Shell
}

// New stores uploads on a self hosted IPFS node through its http api
func New(nodeUrl string, timeout time.Duration) file.Storage {
	shell := ipfsapi.NewShell(nodeUrl)
	if timeout > 0 {
		shell.SetTimeout(timeout)
	}
	return &ipfsNodeStorage{shell: shell}
}

func (s *ipfsNodeStorage) Store(c ctx.Ctx, name string, body []byte, contentType string) (string, error) {
	cid, err := s.shell.Add(bytes.NewReader(body), ipfsapi.Pin(true))
	if err != nil {
		c.WithFields(log.Fields{
			"name": name,
			"err":  err,
		}).Error("shell.Add failed")
		return "", err
	}
	return "ipfs://" + cid, nil
}
