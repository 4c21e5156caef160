// Package car reads and writes CARv1 archives of blocks, checking on read
// that every block hashes to its CID.
package car

import (
	"bufio"
	"fmt"
	"io"
	"iter"

	"github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	logging "github.com/ipfs/go-log/v2"
	gocar "github.com/ipld/go-car"
	"github.com/ipld/go-car/util"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/pkg/errors"
	"github.com/storacha/go-legacyhash/core/ipld"
	"github.com/storacha/go-legacyhash/core/ipld/block"

	// MD5 and SHA-1 CIDs are verified with this module's hashers.
	_ "github.com/storacha/go-legacyhash/core/ipld/hash/registry"
)

var log = logging.Logger("legacyhash/car")

// ContentType is the value the HTTP Content-Type header should have for CARs.
// See https://www.iana.org/assignments/media-types/application/vnd.ipld.car
const ContentType = "application/vnd.ipld.car"

func Encode(roots []ipld.Link, blocks iter.Seq2[ipld.Block, error]) io.Reader {
	reader, writer := io.Pipe()
	go func() {
		h := gocar.CarHeader{Version: 1}
		for _, r := range roots {
			cl, ok := r.(cidlink.Link)
			if !ok {
				writer.CloseWithError(fmt.Errorf("unsupported root link type: %T", r))
				return
			}
			h.Roots = append(h.Roots, cl.Cid)
		}
		hb, err := cbor.DumpObject(&h)
		if err != nil {
			writer.CloseWithError(fmt.Errorf("writing CAR header: %w", err))
			return
		}
		if err := util.LdWrite(writer, hb); err != nil {
			writer.CloseWithError(err)
			return
		}
		for b, err := range blocks {
			if err != nil {
				writer.CloseWithError(fmt.Errorf("writing CAR blocks: %w", err))
				return
			}
			if err := util.LdWrite(writer, []byte(b.Link().Binary()), b.Bytes()); err != nil {
				writer.CloseWithError(err)
				return
			}
		}
		writer.Close()
	}()
	return reader
}

func Decode(reader io.Reader) ([]ipld.Link, iter.Seq2[ipld.Block, error], error) {
	br := bufio.NewReader(reader)

	hb, err := util.LdRead(br)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading CAR header")
	}

	var ch gocar.CarHeader
	if err := cbor.DecodeInto(hb, &ch); err != nil {
		return nil, nil, fmt.Errorf("invalid header: %v", err)
	}

	if ch.Version != 1 {
		return nil, nil, fmt.Errorf("invalid car version: %d", ch.Version)
	}

	roots := make([]ipld.Link, 0, len(ch.Roots))
	for _, r := range ch.Roots {
		roots = append(roots, cidlink.Link{Cid: r})
	}

	return roots, func(yield func(ipld.Block, error) bool) {
		for {
			c, bytes, err := util.ReadNode(br)
			if err != nil {
				if err != io.EOF {
					yield(nil, errors.Wrap(err, "reading CAR block"))
				}
				return
			}
			b, err := verify(c, bytes)
			if !yield(b, err) || err != nil {
				return
			}
		}
	}, nil
}

func verify(c cid.Cid, bytes []byte) (ipld.Block, error) {
	hashed, err := c.Prefix().Sum(bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "hashing block %s", c)
	}

	if !hashed.Equals(c) {
		log.Warnw("block integrity mismatch", "cid", c.String(), "computed", hashed.String())
		return nil, fmt.Errorf("%w: mismatch in content integrity, name: %s, data: %s", block.ErrIntegrity, c, hashed)
	}

	return block.NewBlock(cidlink.Link{Cid: c}, bytes), nil
}
