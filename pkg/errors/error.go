package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// MalformedTickError is returned when a provider payload cannot become a valid tick.
	MalformedTickError ErrorCode = "malformed_tick"
	// InvalidDepthLevelError is returned when a depth level other than 1 or 5 is requested.
	InvalidDepthLevelError ErrorCode = "invalid_depth_level"
	// StoreUnavailableError is returned when the tick store backend cannot be reached in time.
	StoreUnavailableError ErrorCode = "store_unavailable"
	// NotFoundError is returned when an instrument has no stored ticks.
	NotFoundError ErrorCode = "not_found"
	// SubscriptionLimitError is returned when a subscription would exceed the upstream limit.
	SubscriptionLimitError ErrorCode = "subscription_limit_exceeded"
	// FeedNotConnectedError is returned when a control message needs a live upstream session.
	FeedNotConnectedError ErrorCode = "feed_not_connected"
	// QueueFullError is returned when the ingestion queue stays full past the enqueue wait.
	QueueFullError ErrorCode = "queue_full"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"

	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"

	// RedisXAddError represents an error when adding entries to a stream in Redis.
	RedisXAddError ErrorCode = "redis_xadd_error"
	// RedisXLenError represents an error when getting the length of a stream in Redis.
	RedisXLenError ErrorCode = "redis_xlen_error"
	// RedisXRangeError represents an error when reading a stream range in Redis.
	RedisXRangeError ErrorCode = "redis_xrange_error"
)

// String returns the code as a plain string.
func (c ErrorCode) String() string {
	return string(c)
}
