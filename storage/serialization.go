// Copyright 2025 Poiesic Systems
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


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/poiesic/toolshelf/core"
)

// MarshalItemID serializes an item ID to bytes.
func MarshalItemID(id string) []byte {
	buf := make([]byte, ord.String.Size(id))
	ord.String.Marshal(id, buf)
	return buf
}

// UnmarshalItemID deserializes an item ID from bytes.
func UnmarshalItemID(data []byte) (string, error) {
	id, _, err := ord.String.Unmarshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: item id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalItem serializes an Item to bytes.
func MarshalItem(item *core.Item) []byte {
	buf := make([]byte, core.ItemMUS.Size(*item))
	core.ItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalItem deserializes an Item from bytes.
func UnmarshalItem(data []byte) (*core.Item, error) {
	item, n, err := core.ItemMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: item: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: item: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &item, nil
}
