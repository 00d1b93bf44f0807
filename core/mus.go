// Copyright 2025 DeepTech HQ
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the storage layer. Field order is part of the stored
// format; append new fields at the end only.
var (
	IDMUS            = idSer{}
	ExpertProfileMUS = expertProfileSer{}

	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
	float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)
)

type idSer struct{}

func (idSer) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idSer) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// Timestamps are stored as Unix microseconds. The zero time is stored as 0 so
// it round-trips to time.Time{} (profiles without an embedding have a zero
// EmbeddedAt).
type timeMicroSer struct{}

var timeMicroMUS = timeMicroSer{}

func (timeMicroSer) Marshal(t time.Time, bs []byte) (n int) {
	var micro int64
	if !t.IsZero() {
		micro = t.UnixMicro()
	}
	return varint.Int64.Marshal(micro, bs)
}

func (timeMicroSer) Unmarshal(bs []byte) (t time.Time, n int, err error) {
	micro, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	if micro != 0 {
		t = time.UnixMicro(micro).UTC()
	}
	return
}

func (timeMicroSer) Size(t time.Time) (size int) {
	var micro int64
	if !t.IsZero() {
		micro = t.UnixMicro()
	}
	return varint.Int64.Size(micro)
}

func (timeMicroSer) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

type expertProfileSer struct{}

func (expertProfileSer) Marshal(p ExpertProfile, bs []byte) (n int) {
	n = IDMUS.Marshal(p.Id, bs)
	n += ord.String.Marshal(p.Name, bs[n:])
	n += ord.String.Marshal(p.Bio, bs[n:])
	n += stringSliceMUS.Marshal(p.Skills, bs[n:])
	n += stringSliceMUS.Marshal(p.Domains, bs[n:])
	n += raw.Float64.Marshal(p.RateAdvisory, bs[n:])
	n += raw.Float64.Marshal(p.RateArchitecture, bs[n:])
	n += raw.Float64.Marshal(p.RateExecution, bs[n:])
	n += varint.Int.Marshal(int(p.Vetting), bs[n:])
	n += raw.Float64.Marshal(p.Rating, bs[n:])
	n += varint.Int.Marshal(p.ReviewCount, bs[n:])
	n += ord.Bool.Marshal(p.Available, bs[n:])
	n += timeMicroMUS.Marshal(p.CreatedAt, bs[n:])
	n += timeMicroMUS.Marshal(p.UpdatedAt, bs[n:])
	n += float32SliceMUS.Marshal(p.Vector, bs[n:])
	n += ord.String.Marshal(p.EmbedText, bs[n:])
	n += timeMicroMUS.Marshal(p.EmbeddedAt, bs[n:])
	return
}

func (expertProfileSer) Unmarshal(bs []byte) (p ExpertProfile, n int, err error) {
	var n1 int
	p.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	p.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Bio, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Skills, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Domains, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.RateAdvisory, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.RateArchitecture, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.RateExecution, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var vetting int
	vetting, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Vetting = VettingStatus(vetting)
	p.Rating, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.ReviewCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Available, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.CreatedAt, n1, err = timeMicroMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.UpdatedAt, n1, err = timeMicroMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.EmbedText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.EmbeddedAt, n1, err = timeMicroMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (expertProfileSer) Size(p ExpertProfile) (size int) {
	size = IDMUS.Size(p.Id)
	size += ord.String.Size(p.Name)
	size += ord.String.Size(p.Bio)
	size += stringSliceMUS.Size(p.Skills)
	size += stringSliceMUS.Size(p.Domains)
	size += raw.Float64.Size(p.RateAdvisory)
	size += raw.Float64.Size(p.RateArchitecture)
	size += raw.Float64.Size(p.RateExecution)
	size += varint.Int.Size(int(p.Vetting))
	size += raw.Float64.Size(p.Rating)
	size += varint.Int.Size(p.ReviewCount)
	size += ord.Bool.Size(p.Available)
	size += timeMicroMUS.Size(p.CreatedAt)
	size += timeMicroMUS.Size(p.UpdatedAt)
	size += float32SliceMUS.Size(p.Vector)
	size += ord.String.Size(p.EmbedText)
	size += timeMicroMUS.Size(p.EmbeddedAt)
	return
}

func (expertProfileSer) Skip(bs []byte) (n int, err error) {
	skips := []func([]byte) (int, error){
		IDMUS.Skip,
		ord.String.Skip,
		ord.String.Skip,
		stringSliceMUS.Skip,
		stringSliceMUS.Skip,
		raw.Float64.Skip,
		raw.Float64.Skip,
		raw.Float64.Skip,
		varint.Int.Skip,
		raw.Float64.Skip,
		varint.Int.Skip,
		ord.Bool.Skip,
		timeMicroMUS.Skip,
		timeMicroMUS.Skip,
		float32SliceMUS.Skip,
		ord.String.Skip,
		timeMicroMUS.Skip,
	}
	var n1 int
	for _, skip := range skips {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
