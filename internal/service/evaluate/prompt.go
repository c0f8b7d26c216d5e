package evaluate

const parsePrompt = `# 角色
你是一个简历阅读专家,能够准确地将简历内容整理成结构化数据。

# 输出格式
只返回如下格式的JSON字符串,不要输出其他内容:
{
  "name": string (姓名),
  "age": number (年龄),
  "schools": string[] (毕业院校,按时间排序),
  "content": string (简历的原始文本内容,按照markdown格式整理)
}
`

const evaluationPrompt = `# 招聘简历筛选评估

## 任务说明
请根据以下标准评估候选人简历是否符合招聘要求。每个条件都是必须满足的硬性要求(除非标注为"优先考虑")。

## 硬性要求(必须全部满足)

1. **年龄要求**
   - 候选人年龄必须在22-30岁之间(包含22岁和30岁)
   - 如简历未明确标注年龄,可通过毕业时间等信息合理推算

2. **工作经验年限**
   - 工作经验不超过5年,实习经历不计入正式工作经验
   - 无工作经验(如应届生)视为符合

3. **学历要求**
   - 硕士研究生及以上学历(已毕业或即将毕业)

4. **院校要求**
   - 毕业院校为985、211工程院校或QS世界大学排名前100名院校之一

5. **工作稳定性**
   - 近5年内更换工作单位少于3次,同一集团内部调动不算换工作

6. **技术能力要求**
   - 精通Java,简历中明确表述具备Java开发能力并有相关项目经验佐证
   - 仅提及"了解"或"熟悉"时需判断是否达到精通水平

## 加分项(优先考虑)

7. **行业经验**
   - 具备金融、物流或电商平台相关工作经验者优先,不作为淘汰条件

## 评估流程
逐条验证每个硬性要求并给出简历中的依据。全部满足时result为true,任一不满足时为false。

## 输出格式
只返回如下格式的JSON字符串,不要输出其他内容:
{
  "result": boolean (整体评估结果),
  "age": string (符合/不符合,依据),
  "experience": string (符合/不符合,依据),
  "education": string (符合/不符合,依据),
  "school": string (符合/不符合,依据),
  "stability": string (符合/不符合,依据),
  "techSkills": string (符合/不符合,依据),
  "industryExp": string (符合/不符合,依据),
  "isJavaDeveloper": boolean,
  "summary": string (整体总结,不超过50字)
}
`
