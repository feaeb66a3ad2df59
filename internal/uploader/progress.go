package uploader

import "io"

// progressReader reports transfer percentage as the multipart writer drains
// the file. Reports are clamped monotone non-decreasing, 0 to 100; finish
// forces the terminal 100 once the host has acknowledged the upload.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	last     int
	callback ProgressFunc
}

func newProgressReader(r io.Reader, total int64, cb ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, last: -1, callback: cb}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.callback == nil {
		return
	}

	total := p.total
	if p.read > total {
		total = p.read
	}

	percent := 100
	if total > 0 {
		percent = int(p.read * 100 / total)
	}
	if percent > 100 {
		percent = 100
	}
	if percent <= p.last {
		return
	}
	p.last = percent
	p.callback(percent)
}

func (p *progressReader) finish() {
	if p.callback == nil || p.last >= 100 {
		return
	}
	p.last = 100
	p.callback(100)
}
