package wire

import (
	"encoding/binary"
	"fmt"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

// BuildEmpty builds a message with no fields at all: HelloACK, Conf2ACK,
// ErrorACK, ClearACK.
func BuildEmpty(t MessageType) ([]byte, error) {
	return buildFrame(t, nil)
}

// ParseEmpty validates that a message carries no fields.
func ParseEmpty(fields []byte) error {
	if len(fields) != 0 {
		return fmt.Errorf("wire: expected empty message body, got %d bytes", len(fields))
	}
	return nil
}

// ErrorMessage reports a protocol-level error code to the peer.
type ErrorMessage struct {
	Code uint32
}

func BuildError(e *ErrorMessage) ([]byte, error) {
	fields := make([]byte, 4)
	binary.BigEndian.PutUint32(fields, e.Code)
	return buildFrame(MsgError, fields)
}

func ParseError(fields []byte) (*ErrorMessage, error) {
	if len(fields) != 4 {
		return nil, fmt.Errorf("wire: Error message must be 4 bytes, got %d", len(fields))
	}
	return &ErrorMessage{Code: binary.BigEndian.Uint32(fields)}, nil
}

// GoClear requests the peer fall back to cleartext media. Its trailing MAC
// is computed the same way as Hello/Commit/DHPart's, keyed by whatever key
// the caller supplies (stateSendingGoClear passes the sender's H0, which
// Confirm has already revealed).
type GoClear struct{}

func BuildGoClear(mac zcrypto.MAC, key []byte) ([]byte, error) {
	return buildWithMAC(MsgGoClear, nil, mac, key)
}

func ParseGoClear(fields []byte) (*GoClear, [8]byte, error) {
	body, macField, err := parseWithMAC(fields)
	if err != nil {
		return nil, macField, err
	}
	if len(body) != 0 {
		return nil, macField, fmt.Errorf("wire: GoClear must have empty body, got %d bytes", len(body))
	}
	return &GoClear{}, macField, nil
}

// Ping/PingACK exchange endpoint hashes for liveness checks outside the
// main handshake.
type Ping struct {
	Version      [4]byte
	EndpointHash [8]byte
}

func BuildPing(p *Ping) ([]byte, error) {
	fields := make([]byte, 12)
	copy(fields[0:4], p.Version[:])
	copy(fields[4:12], p.EndpointHash[:])
	return buildFrame(MsgPing, fields)
}

func ParsePing(fields []byte) (*Ping, error) {
	if len(fields) != 12 {
		return nil, fmt.Errorf("wire: Ping must be 12 bytes, got %d", len(fields))
	}
	p := &Ping{}
	copy(p.Version[:], fields[0:4])
	copy(p.EndpointHash[:], fields[4:12])
	return p, nil
}

type PingACK struct {
	Version          [4]byte
	SenderEndpointHash [8]byte
	PeerEndpointHash   [8]byte
	PeerSSRC           uint32
}

func BuildPingACK(p *PingACK) ([]byte, error) {
	fields := make([]byte, 24)
	copy(fields[0:4], p.Version[:])
	copy(fields[4:12], p.SenderEndpointHash[:])
	copy(fields[12:20], p.PeerEndpointHash[:])
	binary.BigEndian.PutUint32(fields[20:24], p.PeerSSRC)
	return buildFrame(MsgPingACK, fields)
}

func ParsePingACK(fields []byte) (*PingACK, error) {
	if len(fields) != 24 {
		return nil, fmt.Errorf("wire: PingACK must be 24 bytes, got %d", len(fields))
	}
	p := &PingACK{}
	copy(p.Version[:], fields[0:4])
	copy(p.SenderEndpointHash[:], fields[4:12])
	copy(p.PeerEndpointHash[:], fields[12:20])
	p.PeerSSRC = binary.BigEndian.Uint32(fields[20:24])
	return p, nil
}
