// Package epoch implements per-conversation key generations ("epochs") with
// forward secrecy.
//
// Each epoch is one generation of a conversation's message-encryption key
// pair. Messages are encrypted to the current epoch's public key; each
// authorized member holds a wrap of the epoch private key, encrypted to
// their own public key via ECIES.
//
// Rotation produces a brand-new epoch and wraps its key for exactly the
// members passed in: anyone omitted receives no wrap and is permanently
// excluded from content encrypted after the rotation. Their previously held
// epoch keys remain valid for historical content; retained access to the
// past is an accepted property, not a leak.
//
// Every epoch after the first carries a chain link: the previous epoch's
// private key, symmetrically encrypted under a key derived from the new
// epoch's private key. Holding the current epoch key therefore grants
// backward traversal to every prior epoch, one hop at a time, until the
// first epoch's nil link. Whether a client is allowed to see pre-join
// ciphertext is enforced by the persistence layer's message filtering, not
// here; the crypto layer assumes inputs have already passed that check.
//
// Shared links are read capabilities carried entirely in a 32-byte secret:
// the link's key pair is re-derived from the secret on demand, and the link
// holds a wrap of the epoch key like any other member. Revoking a link is
// structural: leave its derived public key out of the next rotation.
package epoch
