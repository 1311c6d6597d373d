package transmit

// Serializable is an interface for objects that can be turned into a byte array and back
type Serializable interface {
	Serialize() ([]byte, error)
	Deserialize([]byte) error
}
