package appErrors

// Error codes grouped by domain
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Users
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeEmailAlreadyExists   ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeEmailNotVerified     ErrorCode = "EMAIL_NOT_VERIFIED"
	CodeEmailAlreadyVerified ErrorCode = "EMAIL_ALREADY_VERIFIED"

	// Friendships
	CodeFriendRequestNotFound ErrorCode = "FRIEND_REQUEST_NOT_FOUND"
	CodeFriendshipNotFound    ErrorCode = "FRIENDSHIP_NOT_FOUND"
	CodeFriendRequestExists   ErrorCode = "FRIEND_REQUEST_EXISTS"
	CodeAlreadyFriends        ErrorCode = "ALREADY_FRIENDS"
	CodeCannotFriendSelf      ErrorCode = "CANNOT_FRIEND_SELF"
	CodeNotRequestReceiver    ErrorCode = "NOT_REQUEST_RECEIVER"
	CodeRequestAlreadyHandled ErrorCode = "REQUEST_ALREADY_HANDLED"
	CodeNotFriendshipMember   ErrorCode = "NOT_FRIENDSHIP_MEMBER"

	// Songs and setlists
	CodeSongNotFound         ErrorCode = "SONG_NOT_FOUND"
	CodeSetlistNotFound      ErrorCode = "SETLIST_NOT_FOUND"
	CodeNotResourceOwner     ErrorCode = "NOT_RESOURCE_OWNER"
	CodeShareTargetNotFriend ErrorCode = "SHARE_TARGET_NOT_FRIEND"
	CodeShareNotFound        ErrorCode = "SHARE_NOT_FOUND"
	CodeInvalidSongOrder     ErrorCode = "INVALID_SONG_ORDER"

	// System errors
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
