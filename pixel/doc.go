// Package pixel decodes images and exposes their pixels as a flat byte buffer.
//
// The buffer layout mirrors an array view of the decoded image:
//   - rows top to bottom, pixels left to right, channels interleaved
//   - the channel set follows the image mode (1, L, P, RGB, RGBA, CMYK, I;16)
//   - BMP bitmaps are decoded with github.com/sergeymakinen/go-bmp, every other
//     registered format (PNG, JPEG, GIF, TIFF, WebP) through image.Decode
package pixel
