// Package container converts TP-Link router backup files (conf.bin) to their
// configuration markup (conf.xml) and back.
//
// A container is a DES-ECB encrypted buffer. Once decrypted, fixed marker bytes
// tell which of three layouts it uses:
//
//	Plain               digest(markup) ++ markup                 "<?xml" at 16
//	CompressedVariantA  digest(stream) ++ stream                 "<\0\0?xml" at 20
//	CompressedVariantB  compress(digest(markup) ++ markup)       "<\0\0?xml" at 22
//
// where stream = compress(markup). The digest is MD5. The layouts are listed in
// variants.csv, which is embedded in the package.
//
// Everything here works on in-memory buffers; a container is never larger than
// [MaxContainerSize] bytes.
package container
