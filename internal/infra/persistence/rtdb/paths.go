// Package rtdb implements the persistence layer over the DocumentStore
// port, mapping domain entities to the stored document tree.
package rtdb

// The document tree layout. Every repository addresses records through these
// helpers, so the schema lives in one place.
const (
	usersPath    = "users"
	productsPath = "products"
	ordersPath   = "orders"
	reportsPath  = "reports"

	chatMetaPath     = "chats/meta"
	chatIndexPath    = "chats/index"
	chatMessagesPath = "chats/messages"

	cartsPath = "carts"
)

func userPath(id string) string {
	return usersPath + "/" + id
}

func productPath(id string) string {
	return productsPath + "/" + id
}

func orderPath(id string) string {
	return ordersPath + "/" + id
}

func reportPath(id string) string {
	return reportsPath + "/" + id
}

func roomMetaPath(roomID string) string {
	return chatMetaPath + "/" + roomID
}

func roomMessagesPath(roomID string) string {
	return chatMessagesPath + "/" + roomID
}

func userIndexPath(userID string) string {
	return chatIndexPath + "/" + userID
}

func indexEntryPath(userID, roomID string) string {
	return userIndexPath(userID) + "/" + roomID
}

func cartPath(userID string) string {
	return cartsPath + "/" + userID
}

func cartItemPath(userID, productID string) string {
	return cartPath(userID) + "/" + productID
}
