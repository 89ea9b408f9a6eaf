package redisx

import "time"

const (
	// idem:order:create:{restaurantId}:{Idempotency-Key} -> order_id
	KeyIdemOrderCreate = "idem:order:create:%s"
)

var TTLIdempotency = 24 * time.Hour
