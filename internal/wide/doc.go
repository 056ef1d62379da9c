// Package wide provides SIMD-friendly wide types for batch pixel processing.
//
// This package implements a wide type (U16x16) designed to enable Go
// compiler auto-vectorization. By using a fixed-size array and simple
// loops, it allows the compiler to generate SIMD instructions on supported
// architectures (SSE, AVX, NEON).
//
// # Wide Types
//
// U16x16: 16 uint16 values for integer operations (alpha blending, color channels).
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
//   - Provide benchmarks to verify SIMD performance gains
package wide
