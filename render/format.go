package render

import (
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mordilloSan/bls/config"
)

// DateLayout is strftime "%a %b %e %T %Y".
const DateLayout = "Mon Jan _2 15:04:05 2006"

type permBit struct {
	mask   fs.FileMode
	letter string
}

var permBits = [9]permBit{
	{0o400, "r"}, {0o200, "w"}, {0o100, "x"},
	{0o040, "r"}, {0o020, "w"}, {0o010, "x"},
	{0o004, "r"}, {0o002, "w"}, {0o001, "x"},
}

// FormatPermissions renders owner, group and other r/w/x bits. Set bits
// use the scheme's read/write/exec colors, unset bits a '-' in the
// no-access color.
func FormatPermissions(p *Painter, mode fs.FileMode, scheme config.ColorScheme) string {
	var b strings.Builder
	for _, bit := range permBits {
		if mode&bit.mask == 0 {
			b.WriteString(p.Paint("-", scheme.NoAccess))
			continue
		}
		var c config.RGB
		switch bit.letter {
		case "r":
			c = scheme.Read
		case "w":
			c = scheme.Write
		default:
			c = scheme.Exec
		}
		b.WriteString(p.Paint(bit.letter, c))
	}
	return b.String()
}

// FormatDate renders t in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// FormatSize renders a size in bytes, or in IEC units when human is set.
func FormatSize(size int64, human bool) string {
	if size < 0 {
		size = 0
	}
	if human {
		return humanize.IBytes(uint64(size))
	}
	return strconv.FormatInt(size, 10)
}
