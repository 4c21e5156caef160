package blockstore

import (
	"fmt"
	"iter"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	logging "github.com/ipfs/go-log/v2"
	"github.com/storacha/go-legacyhash/core/ipld"
	"github.com/storacha/go-legacyhash/core/ipld/block"
)

var log = logging.Logger("legacyhash/blockstore")

type BlockReader interface {
	Get(link ipld.Link) (ipld.Block, bool, error)
	Iterator() iter.Seq2[ipld.Block, error]
}

type BlockWriter interface {
	Put(block ipld.Block) error
}

type BlockStore interface {
	BlockReader
	BlockWriter
}

type blockreader struct {
	keys []string
	blks map[string]ipld.Block
}

func (br *blockreader) Get(link ipld.Link) (ipld.Block, bool, error) {
	b, ok := br.blks[link.String()]
	return b, ok, nil
}

func (br *blockreader) Iterator() iter.Seq2[ipld.Block, error] {
	return iterate(br.keys, br.blks)
}

func iterate(keys []string, blks map[string]ipld.Block) iter.Seq2[ipld.Block, error] {
	return func(yield func(ipld.Block, error) bool) {
		for _, k := range keys {
			v, ok := blks[k]
			var err error
			if !ok {
				err = fmt.Errorf("missing block for key: %s", k)
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

func (br *blockreader) add(b ipld.Block) {
	k := b.Link().String()
	if _, ok := br.blks[k]; ok {
		return
	}
	br.blks[k] = b
	br.keys = append(br.keys, k)
}

type blockstore struct {
	mu sync.RWMutex
	blockreader
	verify bool
}

func (bs *blockstore) Put(b ipld.Block) error {
	if bs.verify {
		if err := check(b); err != nil {
			return err
		}
	}
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.add(b)
	return nil
}

func (bs *blockstore) Get(link ipld.Link) (ipld.Block, bool, error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.blockreader.Get(link)
}

// Iterator yields blocks in insertion order over a snapshot of the keys.
func (bs *blockstore) Iterator() iter.Seq2[ipld.Block, error] {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	keys := append([]string(nil), bs.keys...)
	blks := make(map[string]ipld.Block, len(bs.blks))
	for k, v := range bs.blks {
		blks[k] = v
	}
	return iterate(keys, blks)
}

// boundedstore keeps at most a fixed number of blocks, evicting the least
// recently used.
type boundedstore struct {
	cache  *lru.Cache[string, ipld.Block]
	verify bool
}

func (bs *boundedstore) Put(b ipld.Block) error {
	if bs.verify {
		if err := check(b); err != nil {
			return err
		}
	}
	if evicted := bs.cache.Add(b.Link().String(), b); evicted {
		log.Debugw("evicted block", "size", bs.cache.Len())
	}
	return nil
}

func (bs *boundedstore) Get(link ipld.Link) (ipld.Block, bool, error) {
	b, ok := bs.cache.Get(link.String())
	return b, ok, nil
}

// Iterator yields blocks from least to most recently used.
func (bs *boundedstore) Iterator() iter.Seq2[ipld.Block, error] {
	keys := bs.cache.Keys()
	return func(yield func(ipld.Block, error) bool) {
		for _, k := range keys {
			v, ok := bs.cache.Peek(k)
			if !ok {
				continue
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

func check(b ipld.Block) error {
	if err := block.Verify(b); err != nil {
		log.Debugw("rejected block", "link", b.Link().String(), "error", err)
		return fmt.Errorf("putting block %s: %w", b.Link(), err)
	}
	return nil
}

// Option is an option configuring a block reader/writer.
type Option func(cfg *bsConfig) error

type bsConfig struct {
	blks       []ipld.Block
	blksiter   iter.Seq2[ipld.Block, error]
	capacity   int
	skipVerify bool
}

// WithBlocks configures the blocks the blockstore should contain.
func WithBlocks(blks []ipld.Block) Option {
	return func(cfg *bsConfig) error {
		cfg.blks = blks
		return nil
	}
}

// WithBlocksIterator configures the blocks the blockstore should contain.
func WithBlocksIterator(blks iter.Seq2[ipld.Block, error]) Option {
	return func(cfg *bsConfig) error {
		cfg.blksiter = blks
		return nil
	}
}

// WithCapacity bounds the store to size blocks with least recently used
// eviction. It only applies to NewBlockStore.
func WithCapacity(size int) Option {
	return func(cfg *bsConfig) error {
		if size <= 0 {
			return fmt.Errorf("invalid blockstore capacity: %d", size)
		}
		cfg.capacity = size
		return nil
	}
}

// WithoutVerification accepts blocks without re-hashing them.
func WithoutVerification() Option {
	return func(cfg *bsConfig) error {
		cfg.skipVerify = true
		return nil
	}
}

func configure(options []Option) (bsConfig, error) {
	cfg := bsConfig{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// NewBlockStore creates an in memory store. Blocks are verified against
// their link on Put unless WithoutVerification is given.
func NewBlockStore(options ...Option) (BlockStore, error) {
	cfg, err := configure(options)
	if err != nil {
		return nil, err
	}

	var bs BlockStore
	if cfg.capacity > 0 {
		cache, err := lru.New[string, ipld.Block](cfg.capacity)
		if err != nil {
			return nil, fmt.Errorf("creating block LRU: %w", err)
		}
		bs = &boundedstore{cache: cache, verify: !cfg.skipVerify}
	} else {
		bs = &blockstore{
			blockreader: blockreader{
				keys: []string{},
				blks: map[string]ipld.Block{},
			},
			verify: !cfg.skipVerify,
		}
	}

	for _, b := range cfg.blks {
		if err := bs.Put(b); err != nil {
			return nil, err
		}
	}
	if cfg.blksiter != nil {
		for b, err := range cfg.blksiter {
			if err != nil {
				return nil, err
			}
			if err := bs.Put(b); err != nil {
				return nil, err
			}
		}
	}
	return bs, nil
}

// NewBlockReader creates an immutable reader over the configured blocks.
func NewBlockReader(options ...Option) (BlockReader, error) {
	cfg, err := configure(options)
	if err != nil {
		return nil, err
	}

	br := &blockreader{
		keys: []string{},
		blks: map[string]ipld.Block{},
	}
	put := func(b ipld.Block) error {
		if !cfg.skipVerify {
			if err := check(b); err != nil {
				return err
			}
		}
		br.add(b)
		return nil
	}

	for _, b := range cfg.blks {
		if err := put(b); err != nil {
			return nil, err
		}
	}
	if cfg.blksiter != nil {
		for b, err := range cfg.blksiter {
			if err != nil {
				return nil, err
			}
			if err := put(b); err != nil {
				return nil, err
			}
		}
	}

	return br, nil
}

// WriteInto copies every block from a reader into a writer.
func WriteInto(r BlockReader, w BlockWriter) error {
	for b, err := range r.Iterator() {
		if err != nil {
			return err
		}
		if err := w.Put(b); err != nil {
			return fmt.Errorf("putting block: %w", err)
		}
	}
	return nil
}
