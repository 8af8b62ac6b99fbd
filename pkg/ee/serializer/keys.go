package serializer

// Legacy encoding keys.
const (
	KeyType              = "type"
	KeyValue             = "value"
	KeyScope             = "scope"
	KeyAlgorithm         = "algorithm"
	KeyFunction          = "function"
	KeyArgumentReference = "argumentReference"
	KeyArgumentNames     = "argumentNames"
	KeyBody              = "body"

	TypeCompoundValue = "CompoundValue"
	TypeValueRef      = "ValueRef"
	TypeDictionary    = "Dictionary"
	TypeFunction      = "Function"
	TypeFloat         = "Float"
)

// Cloud encoding keys.
const (
	KeyResult                  = "result"
	KeyValues                  = "values"
	KeyConstantValue           = "constantValue"
	KeyIntegerValue            = "integerValue"
	KeyValueReference          = "valueReference"
	KeyArrayValue              = "arrayValue"
	KeyDictionaryValue         = "dictionaryValue"
	KeyFunctionDefinitionValue = "functionDefinitionValue"
	KeyFunctionInvocationValue = "functionInvocationValue"
	KeyFunctionName            = "functionName"
	KeyFunctionReference       = "functionReference"
	KeyArguments               = "arguments"
)

// DateFunction is the constructor time.Time literals are encoded with.
const DateFunction = "Date"
