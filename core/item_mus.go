package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// ItemMUS serializes Item in MUS format. Timestamps are stored as UTC Unix
// microseconds, so sub-microsecond precision is dropped.
var ItemMUS = itemMUS{}

// TimeMUS serializes time.Time as varint Unix microseconds.
var TimeMUS = timeMUS{}

type timeMUS struct{}

func (s timeMUS) Marshal(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func (s timeMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = time.UnixMicro(micros).UTC()
	return
}

func (s timeMUS) Size(v time.Time) (size int) {
	return varint.Int64.Size(v.UnixMicro())
}

func (s timeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

type itemMUS struct{}

func (s itemMUS) Marshal(v Item, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(string(v.Category), bs[n:])
	n += varint.Int.Marshal(v.Rating, bs[n:])
	n += TimeMUS.Marshal(v.CreatedAt, bs[n:])
	n += TimeMUS.Marshal(v.UsageDate, bs[n:])
	return n + ord.String.Marshal(v.Description, bs[n:])
}

func (s itemMUS) Unmarshal(bs []byte) (v Item, n int, err error) {
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var (
		n1       int
		category string
	)
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Category = Category(category)
	v.Rating, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UsageDate, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s itemMUS) Size(v Item) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(string(v.Category))
	size += varint.Int.Size(v.Rating)
	size += TimeMUS.Size(v.CreatedAt)
	size += TimeMUS.Size(v.UsageDate)
	return size + ord.String.Size(v.Description)
}

func (s itemMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip,
		ord.String.Skip,
		varint.Int.Skip,
		TimeMUS.Skip,
		TimeMUS.Skip,
		ord.String.Skip,
	} {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
