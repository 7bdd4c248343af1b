package cart

import "sync"

const lockShards = 64

// ownerLocks serializes mutations per owner. Two owners hashing to the same
// shard contend with each other, which is acceptable at this shard count.
type ownerLocks struct {
	shards [lockShards]sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{}
}

func (l *ownerLocks) lock(ownerID int64) *sync.Mutex {
	shard := &l.shards[uint64(ownerID)%lockShards]
	shard.Lock()
	return shard
}
