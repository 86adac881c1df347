package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pachca/pachcagen/internal/spec"
)

const componentsDoc = `
components:
  schemas:
    Message:
      type: object
      description: A chat message.
      required: [id, entity_type]
      properties:
        id: {type: integer}
        entity_type:
          type: string
          enum: [discussion, thread, user]
        content: {type: string}
        created_at: {type: string, format: date-time}
        attachment: {type: string, format: binary}
        author:
          $ref: "#/components/schemas/User"
        files:
          type: array
          items:
            type: object
            properties:
              key: {type: string}
              size: {type: integer, format: int64}
        meta: {}
        extra:
          type: object
        parent_message_id:
          type: integer
          nullable: true
    User:
      type: object
      properties:
        id: {type: integer}
    NotFound:
      type: object
      properties:
        errors:
          type: array
          items:
            type: object
            properties:
              key: {type: string}
              value: {type: string}
    Role:
      type: string
      enum: [admin, user, multi_guest]
`

func resolve(t *testing.T, ref string) *spec.Schema {
	t.Helper()
	doc, err := spec.ParseDocument([]byte(componentsDoc))
	require.NoError(t, err)
	s, err := spec.NewResolver(doc).Resolve(ref)
	require.NoError(t, err)
	return s
}

func TestSynthesize_Object(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	ref, err := reg.Ensure("Message", resolve(t, "#/components/schemas/Message"))
	require.NoError(t, err)
	assert.Equal(t, TypeRef{Kind: TypeModel, Model: "Message"}, ref)

	var names []string
	for _, m := range reg.Models() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Message", "User", "MessageEntityType", "MessageFilesItem"}, names)

	msg, ok := reg.Lookup("Message")
	require.True(t, ok)
	assert.Equal(t, "A chat message.", msg.Description)
	assert.Equal(t, "#/components/schemas/Message", msg.Origin)

	fields := map[string]Field{}
	for _, f := range msg.Fields {
		fields[f.Name] = f
	}
	assert.True(t, fields["id"].Required)
	assert.False(t, fields["id"].Pointer())
	assert.False(t, fields["content"].Required)
	assert.True(t, fields["content"].Pointer())
	assert.Equal(t, "time.Time", fields["created_at"].Type.GoType(""))
	assert.True(t, fields["created_at"].Type.UsesTime())
	assert.Equal(t, "types.File", fields["attachment"].Type.GoType(""))
	assert.True(t, fields["attachment"].Pointer())
	assert.Equal(t, "User", fields["author"].Type.GoType(""))
	assert.Equal(t, "models.User", fields["author"].Type.GoType("models."))
	assert.Equal(t, "MessageEntityType", fields["entity_type"].Type.GoType(""))
	assert.Equal(t, "[]MessageFilesItem", fields["files"].Type.GoType(""))
	assert.False(t, fields["files"].Pointer())
	assert.Equal(t, TypeAny, fields["meta"].Type.Kind)
	assert.Equal(t, TypeMap, fields["extra"].Type.Kind)
	assert.True(t, fields["parent_message_id"].Nullable)
	assert.Equal(t, "ParentMessageID", fields["parent_message_id"].GoName)

	enum, ok := reg.Lookup("MessageEntityType")
	require.True(t, ok)
	assert.Equal(t, KindEnum, enum.Kind)
	assert.Equal(t, "string", enum.EnumType)
	assert.Equal(t, []any{"discussion", "thread", "user"}, enum.Values)

	item, ok := reg.Lookup("MessageFilesItem")
	require.True(t, ok)
	require.Len(t, item.Fields, 2)
	assert.Equal(t, "int64", item.Fields[1].Type.GoType(""))
}

func TestSynthesize_SameNameTwiceCollides(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	s := resolve(t, "#/components/schemas/User")

	_, err := reg.Synthesize("GetUserResponse200", s)
	require.NoError(t, err)
	_, err = reg.Synthesize("GetUserResponse200", s)
	require.ErrorIs(t, err, ErrModelNameCollision)

	var ce *ModelNameCollisionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "GetUserResponse200", ce.Name)

	_, err = reg.Synthesize("ListUsersResponse200", s)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
}

func TestEnsure_SharesComponentModels(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	notFound := resolve(t, "#/components/schemas/NotFound")

	_, err := reg.Ensure("NotFound", notFound)
	require.NoError(t, err)
	_, err = reg.Ensure("NotFound", notFound)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len(), "NotFound and NotFoundErrorsItem")

	_, err = reg.Ensure("NotFound", resolve(t, "#/components/schemas/User"))
	assert.ErrorIs(t, err, ErrModelNameCollision)
}

func TestSynthesize_FailureRegistersNothing(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	_, err := reg.Synthesize("MessageEntityType", resolve(t, "#/components/schemas/Role"))
	require.NoError(t, err)
	before := reg.Len()

	// Message's entity_type enum derives the name MessageEntityType.
	_, err = reg.Ensure("Message", resolve(t, "#/components/schemas/Message"))
	require.ErrorIs(t, err, ErrModelNameCollision)
	assert.Equal(t, before, reg.Len())
	_, ok := reg.Lookup("Message")
	assert.False(t, ok)
}

func TestSynthesize_NonModelShapes(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	ref, err := reg.Synthesize("Ignored", &spec.Schema{Kind: spec.KindPrimitive, Type: "boolean"})
	require.NoError(t, err)
	assert.Equal(t, "bool", ref.GoType(""))

	ref, err = reg.Synthesize("ListResponse200", &spec.Schema{
		Kind:  spec.KindArray,
		Items: &spec.Schema{Kind: spec.KindPrimitive, Type: "string"},
	})
	require.NoError(t, err)
	assert.Equal(t, "[]string", ref.GoType("models."))

	ref, err = reg.Synthesize("Anything", &spec.Schema{Kind: spec.KindAny})
	require.NoError(t, err)
	assert.Equal(t, "any", ref.GoType(""))
	assert.Equal(t, 0, reg.Len())
}
