// Package compress provides the opaque general-purpose byte codecs used by
// the columnar-post-compressed container variant. These run after a
// column's per-type codec has already produced its bytes — they know
// nothing about columns, rows, or field types, only byte slices.
//
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone) — returns input unchanged. Useful as
// the identity codec when per-column encoding alone is already a good
// match for the data.
//
// **Zstandard** (format.CompressionZstd) — best compression ratio, the
// default choice for archival or bandwidth-constrained transport.
//
// **S2** (format.CompressionS2) — a Snappy-family codec, balanced
// between compression ratio and throughput.
//
// **LZ4** (format.CompressionLZ4) — fastest decompression, moderate
// compression ratio.
//
// | Data shape              | Recommended | Why                         |
// |--------------------------|-------------|------------------------------|
// | Dictionary-coded strings | Zstd        | High residual redundancy    |
// | Bit-packed booleans      | None        | Already dense               |
// | Varint-delta numerics    | S2 or LZ4   | Fast path, modest gain      |
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use; each Compress or
// Decompress call is independent. Zstd, S2 and LZ4 allocate a new output
// buffer per call; NoOp returns its input slice unchanged.
package compress
